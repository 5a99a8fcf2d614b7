package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/digitknn"
	"github.com/hupe1980/digitknn/query"
	"github.com/spf13/cobra"
)

type classifyOptions struct {
	configPath string
	images     string
	labels     string
	query      string
	kMin       int
	kMax       int
	limit      int
	noInvert   bool
	show       bool
	json       bool
}

func newClassifyCmd(root *rootOptions) *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a raw query image",
		Long: `Loads the IDX training set and the raw query image, then prints the
three best ranked digits for every K in the configured range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, root, opts)
		},
	}

	defaults := digitknn.DefaultConfig()
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&opts.images, "images", defaults.DatasetImages, "IDX training images")
	cmd.Flags().StringVar(&opts.labels, "labels", defaults.DatasetLabels, "IDX training labels")
	cmd.Flags().StringVarP(&opts.query, "query", "q", defaults.Query, "raw query image")
	cmd.Flags().IntVar(&opts.kMin, "k-min", defaults.KMin, "smallest K")
	cmd.Flags().IntVar(&opts.kMax, "k-max", defaults.KMax, "largest K")
	cmd.Flags().IntVar(&opts.limit, "limit", defaults.Limit, "number of leading training samples that vote (0 = all)")
	cmd.Flags().BoolVar(&opts.noInvert, "no-invert", false, "classify the query without inverting its intensities")
	cmd.Flags().BoolVar(&opts.show, "show", false, "print the query pixels before the results")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")

	return cmd
}

func runClassify(cmd *cobra.Command, root *rootOptions, opts *classifyOptions) error {
	cfg := digitknn.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = digitknn.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}
	opts.apply(cmd, &cfg)

	logger, err := root.logger(cmd, cfg.Log)
	if err != nil {
		return err
	}

	report, err := digitknn.Run(cmd.Context(), cfg, digitknn.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.json {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if opts.show {
		if err := query.Render(out, report.Query, report.Rows, report.Cols); err != nil {
			return err
		}
	}

	for _, r := range report.Results {
		fmt.Fprintf(out, "K=%d GUESSED 1st : %s, GUESSED 2nd : %s, GUESSED 3rd : %s\n",
			r.K, r.Result.Primary, r.Result.Secondary, r.Result.Tertiary)
	}
	return nil
}

// apply copies explicitly set flags over cfg.
func (o *classifyOptions) apply(cmd *cobra.Command, cfg *digitknn.Config) {
	flags := cmd.Flags()
	if flags.Changed("images") {
		cfg.DatasetImages = o.images
	}
	if flags.Changed("labels") {
		cfg.DatasetLabels = o.labels
	}
	if flags.Changed("query") {
		cfg.Query = o.query
	}
	if flags.Changed("k-min") {
		cfg.KMin = o.kMin
	}
	if flags.Changed("k-max") {
		cfg.KMax = o.kMax
	}
	if flags.Changed("limit") {
		cfg.Limit = o.limit
	}
	if o.noInvert {
		cfg.Invert = false
	}
}
