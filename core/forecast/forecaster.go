package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/cyclecast/core/nn"
	"github.com/kilianp07/cyclecast/core/predictor"
	"github.com/kilianp07/cyclecast/core/series"
)

// SeriesSource loads the observed series for one battery.
type SeriesSource interface {
	LoadSeries(batteryID string) (series.Series, error)
}

// Forecaster runs a trained model over the tail of an observed series.
type Forecaster struct {
	model      *predictor.Model
	sampleSize int
	source     SeriesSource
}

var _ Engine = (*Forecaster)(nil)

// New creates a Forecaster reading sampleSize trailing observations per call.
// The source backs ForecastCycles; it may be nil when only Forecast is used.
func New(model *predictor.Model, sampleSize int, source SeriesSource) *Forecaster {
	return &Forecaster{model: model, sampleSize: sampleSize, source: source}
}

// ForecastCycles loads the battery's observed series from the source and
// forecasts its next horizon days.
func (f *Forecaster) ForecastCycles(batteryID string, horizon int) ([]float64, error) {
	if f.source == nil {
		return nil, fmt.Errorf("forecaster has no series source")
	}
	s, err := f.source.LoadSeries(batteryID)
	if err != nil {
		return nil, fmt.Errorf("load series for %s: %w", batteryID, err)
	}
	return f.Forecast(s, horizon)
}

// Forecast feeds the trailing sampleSize observations of s through the model
// with future=horizon on a gradient-free tape and returns the trailing
// horizon predictions. Model parameters are not mutated.
func (f *Forecaster) Forecast(s series.Series, horizon int) ([]float64, error) {
	if len(s) < f.sampleSize {
		return nil, series.InsufficientDataError{Len: len(s), SampleSize: f.sampleSize}
	}
	tail := s.Tail(f.sampleSize)
	data := make([]float64, len(tail))
	copy(data, tail)
	input := mat.NewDense(1, len(data), data)

	out := f.model.Forward(nn.NewTape(false), input, horizon)
	_, cols := out.Dims()
	res := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		res[i] = out.W.At(0, cols-horizon+i)
	}
	return res, nil
}
