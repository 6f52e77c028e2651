package figure

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// SamplePlot returns a plot of sin and cos over one period. It picks up the
// text handler and font active when it is called.
func SamplePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, 2*math.Pi
	p.Y.Min, p.Y.Max = -1.1, 1.1

	for i, fn := range []struct {
		name string
		f    func(float64) float64
	}{
		{"sin", math.Sin},
		{"cos", math.Cos},
	} {
		line := plotter.NewFunction(fn.f)
		line.Samples = 200
		line.Color = plotutil.Color(i)
		line.Width = 2
		p.Add(line)
		p.Legend.Add(fn.name, line)
	}
	p.Legend.Top = true

	return p
}
