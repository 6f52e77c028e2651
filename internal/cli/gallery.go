package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/gallery"
)

var (
	galleryFlags   thumbnailFlags
	galleryColumns int
	galleryWidth   int
	galleryOutput  string
	galleryWatch   bool
)

var galleryCmd = &cobra.Command{
	Use:   "gallery <dir>",
	Short: "Write an HTML gallery of every PNG in a directory",
	Long: `Collects the PNG files of a directory, sorted by name, and writes them as a
thumbnail grid to <dir>/gallery.html.

With --watch the gallery is rewritten whenever PNG files in the directory
are created, modified or removed, until interrupted.

Examples:
  nbfigtulz gallery img
  nbfigtulz gallery img --columns 4 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runGallery,
}

func init() {
	galleryFlags.register(galleryCmd)
	galleryCmd.Flags().IntVarP(&galleryColumns, "columns", "c", 3, "number of columns")
	galleryCmd.Flags().IntVar(&galleryWidth, "table-width", 0, "table width in pixels")
	galleryCmd.Flags().StringVarP(&galleryOutput, "output", "o", gallery.DefaultOutput, "output file, relative to the directory")
	galleryCmd.Flags().BoolVarP(&galleryWatch, "watch", "w", false, "rebuild when PNG files change")

	rootCmd.AddCommand(galleryCmd)
}

func runGallery(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	thumbOpts, err := galleryFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	opts := gallery.Options{
		Columns:   galleryColumns,
		Width:     galleryWidth,
		Output:    galleryOutput,
		Thumbnail: thumbOpts,
	}

	if galleryWatch {
		w := gallery.NewWatcher(dir, opts, logger)
		w.OnWrite = func(path string) {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return w.Run(cmd.Context())
	}

	path, err := gallery.Write(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
