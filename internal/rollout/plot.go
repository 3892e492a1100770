package rollout

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoSamples is returned when there is nothing to render.
var ErrNoSamples = errors.New("no rollout samples")

var (
	pathColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	stopColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

func pathXYs(samples []Sample) (path, stops plotter.XYs) {
	path = make(plotter.XYs, len(samples))
	stops = make(plotter.XYs, len(samples))
	for i, s := range samples {
		path[i] = plotter.XY{X: s.State.Position.X, Y: s.State.Position.Y}
		stops[i] = plotter.XY{X: s.StopPosition.X, Y: s.StopPosition.Y}
	}
	return path, stops
}

// WritePNG plots the predicted path and the stop position of every sample.
// The image format follows the file extension (png, svg, pdf, ...).
func WritePNG(path string, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	pathPts, stopPts := pathXYs(samples)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Rollout over %s", samples[len(samples)-1].Elapsed)
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pathPts)
	if err != nil {
		return fmt.Errorf("path line: %w", err)
	}
	line.Color = pathColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("path", line)

	scatter, err := plotter.NewScatter(stopPts)
	if err != nil {
		return fmt.Errorf("stop scatter: %w", err)
	}
	scatter.GlyphStyle.Color = stopColor
	scatter.GlyphStyle.Shape = draw.CrossGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("stop", scatter)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save rollout plot: %w", err)
	}
	return nil
}

// RenderHTML writes a go-echarts scatter chart of the path and stop
// positions to w.
func RenderHTML(w io.Writer, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	pathData := make([]opts.ScatterData, 0, len(samples))
	stopData := make([]opts.ScatterData, 0, len(samples))
	maxAbs := 1.0
	for _, s := range samples {
		t := s.Elapsed.Seconds()
		pathData = append(pathData, opts.ScatterData{Value: []interface{}{s.State.Position.X, s.State.Position.Y, t}})
		stopData = append(stopData, opts.ScatterData{Value: []interface{}{s.StopPosition.X, s.StopPosition.Y, t}})
		for _, v := range []float64{s.State.Position.X, s.State.Position.Y, s.StopPosition.X, s.StopPosition.Y} {
			if !math.IsInf(v, 0) && !math.IsNaN(v) {
				maxAbs = math.Max(maxAbs, math.Abs(v))
			}
		}
	}
	pad := math.Ceil(maxAbs * 1.1)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Kinematics Rollout", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Kinematics Rollout", Subtitle: fmt.Sprintf("samples=%d horizon=%s", len(samples), samples[len(samples)-1].Elapsed)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("path", pathData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	scatter.AddSeries("stop", stopData, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render rollout chart: %w", err)
	}
	return nil
}
