package metrics

import (
	coremetrics "github.com/kilianp07/cyclecast/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records training progress in Prometheus metrics.
type PromSink struct {
	epochs      *prometheus.CounterVec
	loss        *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
	divergences *prometheus.CounterVec
	forecasts   *prometheus.CounterVec
}

// NewPromSink registers training metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	epochs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "training_epochs_total",
		Help: "Total number of completed training epochs",
	}, []string{"battery_id"})
	loss := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "training_loss",
		Help: "Mean squared error of the most recent epoch",
	}, []string{"battery_id"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "training_epoch_duration_seconds",
		Help:    "Wall time spent per training epoch",
		Buckets: prometheus.DefBuckets,
	}, []string{"battery_id"})
	divergences := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "training_divergences_total",
		Help: "Training runs aborted on a non-finite loss",
	}, []string{"battery_id"})
	forecasts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecasts_total",
		Help: "Total number of forecasts produced",
	}, []string{"battery_id"})

	collectors := []prometheus.Collector{epochs, loss, duration, divergences, forecasts}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				collectors[i] = are.ExistingCollector
			} else {
				return nil, err
			}
		}
	}

	return &PromSink{
		epochs:      collectors[0].(*prometheus.CounterVec),
		loss:        collectors[1].(*prometheus.GaugeVec),
		duration:    collectors[2].(*prometheus.HistogramVec),
		divergences: collectors[3].(*prometheus.CounterVec),
		forecasts:   collectors[4].(*prometheus.CounterVec),
	}, nil
}

// RecordTrainingEpoch increments the epoch counter and updates the loss gauge.
func (s *PromSink) RecordTrainingEpoch(ev coremetrics.TrainingEpochEvent) error {
	s.epochs.WithLabelValues(ev.BatteryID).Inc()
	s.loss.WithLabelValues(ev.BatteryID).Set(ev.Loss)
	s.duration.WithLabelValues(ev.BatteryID).Observe(ev.Duration.Seconds())
	return nil
}

// RecordForecast counts completed forecasts.
func (s *PromSink) RecordForecast(ev coremetrics.ForecastEvent) error {
	s.forecasts.WithLabelValues(ev.BatteryID).Inc()
	return nil
}

// RecordDivergence counts aborted runs.
func (s *PromSink) RecordDivergence(ev coremetrics.DivergenceEvent) error {
	s.divergences.WithLabelValues(ev.BatteryID).Inc()
	return nil
}
