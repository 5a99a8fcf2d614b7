package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/hupe1980/digitknn"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "digitknn",
		Short: "Classify handwritten digits with K-nearest-neighbor search",
		Long: `digitknn compares a single raw query image against a labeled IDX
training set in pixel space and reports the three most voted digits
for a range of K values.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")

	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newConvertCmd())

	return cmd
}

// Execute runs the digitknn command line. An interrupt cancels the run.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// logger builds the command logger. Flags take precedence over cfg.
func (o *rootOptions) logger(cmd *cobra.Command, cfg digitknn.LogConfig) (*digitknn.Logger, error) {
	levelName := cfg.Level
	if o.logLevel != "" {
		levelName = o.logLevel
	}
	format := cfg.Format
	if o.logFormat != "" {
		format = o.logFormat
	}

	level, err := digitknn.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	return digitknn.NewWriterLogger(cmd.ErrOrStderr(), level, format), nil
}
