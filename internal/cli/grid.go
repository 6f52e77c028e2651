package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/display"
	"github.com/avitase/nbfigtulz/internal/gallery"
)

var (
	gridFlags   thumbnailFlags
	gridColumns int
	gridWidth   int
	gridOutput  string
)

var gridCmd = &cobra.Command{
	Use:   "grid <file>...",
	Short: "Arrange image thumbnails in an HTML table",
	Long: `Builds a thumbnail for each image and arranges them in a table with the
given number of columns, in argument order.

Examples:
  nbfigtulz grid a.png b.png c.png --columns 2
  nbfigtulz grid img/*.png --columns 3 --table-width 900 -o figures.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrid,
}

func init() {
	gridFlags.register(gridCmd)
	gridCmd.Flags().IntVarP(&gridColumns, "columns", "c", 2, "number of columns")
	gridCmd.Flags().IntVar(&gridWidth, "table-width", 0, "table width in pixels")
	gridCmd.Flags().StringVarP(&gridOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := gridFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	thumbs, err := gallery.Thumbnails(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("failed to build thumbnails: %w", err)
	}

	html, err := display.Grid(thumbs, gridColumns, gridWidth)
	if err != nil {
		return err
	}

	return writeOutput(cmd, gridOutput, string(html))
}
