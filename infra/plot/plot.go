// Package plot renders diagnostic charts for a training run: the loss curve
// and the observed tail with its forecast continuation.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kilianp07/cyclecast/core/series"
)

// LossCurve writes the per-epoch loss history to a PNG file.
func LossCurve(losses []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "mse"

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i].X = float64(i)
		pts[i].Y = l
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("loss line: %w", err)
	}
	p.Add(line)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Forecast writes the observed tail followed by the forecast to a PNG file.
// The forecast is drawn as a dashed line starting where observations end.
func Forecast(tail series.Series, forecast []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Daily cycle usage forecast"
	p.X.Label.Text = "day"
	p.Y.Label.Text = "cycles"

	obs := make(plotter.XYs, len(tail))
	for i, v := range tail {
		obs[i].X = float64(i)
		obs[i].Y = v
	}
	obsLine, err := plotter.NewLine(obs)
	if err != nil {
		return fmt.Errorf("observed line: %w", err)
	}

	fc := make(plotter.XYs, len(forecast))
	for i, v := range forecast {
		fc[i].X = float64(len(tail) + i)
		fc[i].Y = v
	}
	fcLine, err := plotter.NewLine(fc)
	if err != nil {
		return fmt.Errorf("forecast line: %w", err)
	}
	fcLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(obsLine, fcLine)
	p.Legend.Add("observed", obsLine)
	p.Legend.Add("forecast", fcLine)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
