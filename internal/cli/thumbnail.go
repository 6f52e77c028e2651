package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/gallery"
)

var (
	thumbFlags  thumbnailFlags
	thumbOutput string
	thumbNoLink bool
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <file>...",
	Short: "Render images as inline HTML thumbnails",
	Long: `Builds a JPEG thumbnail for each image and prints an HTML fragment per
image. By default each thumbnail links to the full image, downloadable
as <name>.png.

Scale, quality and background default to the configuration
(thumbnail_scale, thumbnail_quality, thumbnail_background).

Examples:
  nbfigtulz thumbnail img/loss.png
  nbfigtulz thumbnail img/*.png --scale 0.25 --quality 60 -o thumbs.html
  nbfigtulz thumbnail logo.png --background 0,0,0 --no-link`,
	Args: cobra.MinimumNArgs(1),
	RunE: runThumbnail,
}

func init() {
	thumbFlags.register(thumbnailCmd)
	thumbnailCmd.Flags().StringVarP(&thumbOutput, "output", "o", "", "output file (default: stdout)")
	thumbnailCmd.Flags().BoolVar(&thumbNoLink, "no-link", false, "emit bare <img> tags without download links")

	rootCmd.AddCommand(thumbnailCmd)
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := thumbFlags.options(cmd, cfg)
	if err != nil {
		return err
	}

	thumbs, err := gallery.Thumbnails(cmd.Context(), args, opts)
	if err != nil {
		return fmt.Errorf("failed to build thumbnails: %w", err)
	}

	fragments := make([]string, len(thumbs))
	for i, th := range thumbs {
		fragments[i] = th.ToHTML(!thumbNoLink)
		logger.Debug("thumbnail created", "name", th.Name(), "compression", th.CompressionRate())
	}

	return writeOutput(cmd, thumbOutput, strings.Join(fragments, "\n"))
}
