package metrics

import coremetrics "github.com/kilianp07/cyclecast/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTrainingEpoch forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordTrainingEpoch(ev coremetrics.TrainingEpochEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordTrainingEpoch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordForecast forwards forecast events to sinks that support them.
func (m *MultiSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ForecastRecorder); ok {
			if err := rec.RecordForecast(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDivergence forwards divergence events to sinks that support them.
func (m *MultiSink) RecordDivergence(ev coremetrics.DivergenceEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DivergenceRecorder); ok {
			if err := rec.RecordDivergence(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
