// Package report renders parsed GRD curves to chart artifacts: an HTML
// line chart (go-echarts) or a PNG (gonum/plot). Both renderers are
// read-only over the graph model.
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/grdkit/internal/config"
	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/siformat"
)

// axisLabel combines a channel name with its unit for axis titles.
func axisLabel(g *grd.GraphData, channel string) string {
	unit, err := g.Unit(channel)
	if err != nil || unit == "" {
		return channel
	}
	return fmt.Sprintf("%s (%s)", channel, unit)
}

// RenderHTML writes a go-echarts line chart of the given curve to w. The
// named X channel supplies the horizontal axis; every other channel
// becomes a series.
func RenderHTML(w io.Writer, g *grd.GraphData, curveNumber int, xChannel string, cfg *config.PlotConfig) error {
	if cfg == nil {
		cfg = config.EmptyPlotConfig()
	}

	c, err := g.CurveByNumber(curveNumber)
	if err != nil {
		return err
	}
	xCol, err := g.ChannelIndex(xChannel)
	if err != nil {
		return err
	}
	xValues := c.Column(xCol)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("Curve %d", curveNumber),
			Theme:     cfg.GetTheme(),
			Width:     cfg.GetWidth(),
			Height:    cfg.GetHeight(),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    g.SampleName,
			Subtitle: fmt.Sprintf("curve=%d rows=%d key=%s", curveNumber, c.Len(), c.Key),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisLabel(g, xChannel)}),
	)

	// Tick labels carry the X channel's unit; si_prefix picks between
	// prefix-scaled and fixed-point rendering.
	xUnit, _ := g.Unit(xChannel)
	xLabels := make([]string, len(xValues))
	for i, v := range xValues {
		if cfg.GetSIPrefix() {
			xLabels[i] = siformat.Format(v, xUnit, cfg.GetDecimals())
		} else {
			xLabels[i] = siformat.FormatFixed(v, xUnit, cfg.GetDecimals())
		}
	}
	line.SetXAxis(xLabels)

	for col, name := range g.Names {
		if col == xCol {
			continue
		}
		values := c.Column(col)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(axisLabel(g, name), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SavePNG writes a gonum/plot line chart of the given curve to path.
func SavePNG(path string, g *grd.GraphData, curveNumber int, xChannel string) error {
	c, err := g.CurveByNumber(curveNumber)
	if err != nil {
		return err
	}
	xCol, err := g.ChannelIndex(xChannel)
	if err != nil {
		return err
	}
	xValues := c.Column(xCol)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - curve %d", g.SampleName, curveNumber)
	p.X.Label.Text = axisLabel(g, xChannel)
	p.Legend.Top = true

	colors := seriesColors(len(g.Names))
	for col, name := range g.Names {
		if col == xCol {
			continue
		}
		values := c.Column(col)
		pts := make(plotter.XYs, len(values))
		for i := range values {
			pts[i] = plotter.XY{X: xValues[i], Y: values[i]}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("build line for %s: %w", name, err)
		}
		l.Width = vg.Points(1)
		l.Color = colors[col%len(colors)]
		p.Add(l)
		p.Legend.Add(axisLabel(g, name), l)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// seriesColors returns a palette of distinct line colors.
func seriesColors(n int) []color.Color {
	if n <= 0 {
		n = 1
	}
	base := []color.Color{
		color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
		color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
		color.RGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	}
	out := make([]color.Color, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, base[i%len(base)])
	}
	return out
}
