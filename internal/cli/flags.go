package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/config"
	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// thumbnailFlags are shared by every command that builds thumbnails. Flags
// that are not set fall back to the configuration.
type thumbnailFlags struct {
	scale      float64
	quality    int
	background string
	width      int
	report     bool
}

func (f *thumbnailFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "thumbnail scale factor (default: thumbnail_scale)")
	cmd.Flags().IntVar(&f.quality, "quality", 0, "JPEG quality 1-95 (default: thumbnail_quality)")
	cmd.Flags().StringVar(&f.background, "background", "", "background for transparent pixels, #rrggbb or r,g,b")
	cmd.Flags().IntVar(&f.width, "width", 0, "display width of each image in pixels")
	cmd.Flags().BoolVar(&f.report, "report", false, "print the compression rate of each thumbnail")
}

func (f *thumbnailFlags) options(cmd *cobra.Command, cfg *config.Config) (thumbnail.Options, error) {
	opts := cfg.ThumbnailOptions()
	opts.Report = cmd.OutOrStdout()

	if cmd.Flags().Changed("scale") {
		opts.Scale = f.scale
	}
	if cmd.Flags().Changed("quality") {
		opts.Quality = f.quality
	}
	if f.background != "" {
		bg, err := thumbnail.ParseRGB(f.background)
		if err != nil {
			return thumbnail.Options{}, err
		}
		opts.Background = bg
	}
	if f.width > 0 {
		opts.Width = f.width
	}
	if cmd.Flags().Changed("report") {
		opts.ReportCompression = f.report
	}
	return opts, nil
}

// writeOutput writes content to path, or to the command output if path is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content+"\n")
		return err
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("output written", "path", path)
	return nil
}
