// Package metrics defines the observability events emitted by the training
// pipeline and the sink interfaces that record them.
package metrics

import "time"

// TrainingEpochEvent captures the outcome of one training epoch.
type TrainingEpochEvent struct {
	RunID     string
	BatteryID string
	Epoch     int
	Loss      float64
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records training epochs for observability purposes.
type MetricsSink interface {
	RecordTrainingEpoch(ev TrainingEpochEvent) error
}

// ForecastEvent captures a completed forecast.
type ForecastEvent struct {
	RunID     string
	BatteryID string
	Horizon   int
	Values    []float64
	Time      time.Time
}

// ForecastRecorder records forecast results.
type ForecastRecorder interface {
	RecordForecast(ev ForecastEvent) error
}

// DivergenceEvent marks a training run aborted on a non-finite loss.
type DivergenceEvent struct {
	RunID     string
	BatteryID string
	Epoch     int
	Time      time.Time
}

// DivergenceRecorder records aborted runs.
type DivergenceRecorder interface {
	RecordDivergence(ev DivergenceEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordTrainingEpoch(TrainingEpochEvent) error { return nil }
func (NopSink) RecordForecast(ForecastEvent) error           { return nil }
func (NopSink) RecordDivergence(DivergenceEvent) error       { return nil }
