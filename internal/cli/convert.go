package cli

import (
	"fmt"

	"github.com/hupe1980/digitknn/query"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a PNG or JPEG image into a raw query image",
		Long: `Decodes src, scales it to cols x rows, converts it to 8-bit grayscale
and writes the headerless pixels to dst.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := query.ConvertFile(args[0], args[1], rows, cols); err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %dx%d raw image to %s\n", rows, cols, args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 28, "output height in pixels")
	cmd.Flags().IntVar(&cols, "cols", 28, "output width in pixels")

	return cmd
}
