package cli

import (
	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/display"
	"github.com/avitase/nbfigtulz/internal/figure"
)

var (
	sampleSize  string
	sampleDPI   int
	sampleTeX   bool
	sampleQuiet bool
)

var sampleCmd = &cobra.Command{
	Use:   "sample <name>",
	Short: "Save a sample figure and print its thumbnail",
	Long: `Renders a sin/cos plot to <img_dir>/<name>.png and prints the HTML
thumbnail. With --tex the plot is drawn with LaTeX text and a serif font,
and <img_dir>/<name>.tex is written alongside the PNG.

The image directory (img_dir) must already exist.

Examples:
  nbfigtulz sample waves
  nbfigtulz sample waves --size large --tex`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleSize, "size", "s", "small", "figure size preset (small, large)")
	sampleCmd.Flags().IntVar(&sampleDPI, "dpi", 0, "PNG resolution (default: dpi)")
	sampleCmd.Flags().BoolVar(&sampleTeX, "tex", false, "use LaTeX text and also write a pgf file")
	sampleCmd.Flags().BoolVarP(&sampleQuiet, "quiet", "q", false, "do not print written file paths")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	name := args[0]

	size, err := figure.ParsePreset(sampleSize)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	save := func() error {
		p := figure.SamplePlot(name)
		th, err := figure.Save(p, name, cfg, figure.SaveOptions{
			Size:  size,
			DPI:   sampleDPI,
			Quiet: sampleQuiet,
			Out:   out,
		})
		if err != nil {
			return err
		}
		logger.Debug("figure saved", "name", name, "compression", th.CompressionRate())
		th.Repr(display.Writer{W: out})
		return nil
	}

	if sampleTeX {
		return figure.With(save)
	}
	return save()
}
