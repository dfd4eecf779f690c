package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func axisLabel(p Profile) string {
	if p.Orientation == "y" {
		return "Row (px)"
	}
	return "Column (px)"
}

// PlotPNG draws the normalized profile as a line plot. The image format
// follows the file extension (png, svg, pdf...).
func PlotPNG(p Profile, path string) error {
	if len(p.Normalized) == 0 {
		return fmt.Errorf("profile %s has no values", p.Source)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s - %s projection", p.Source, p.Orientation)
	pl.X.Label.Text = axisLabel(p)
	pl.Y.Label.Text = "Intensity (normalized)"
	pl.Y.Min = 0
	pl.Y.Max = 1.05
	pl.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(p.Normalized))
	for i, v := range p.Normalized {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(1)
	pl.Add(line)

	if err := pl.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// ChartHTML renders the normalized profile as an interactive HTML line chart.
func ChartHTML(p Profile, w io.Writer) error {
	xs := make([]int, len(p.Normalized))
	norm := make([]opts.LineData, len(p.Normalized))
	for i, v := range p.Normalized {
		xs[i] = i
		norm[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: p.Source, Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Source,
			Subtitle: fmt.Sprintf("orientation=%s size=%dx%d peak=%d", p.Orientation, p.Width, p.Height, p.PeakIndex),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisLabel(p), NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity", Min: 0, Max: 1}),
	)
	line.SetXAxis(xs).AddSeries("normalized", norm)

	return line.Render(w)
}
