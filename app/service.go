package app

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/cyclecast/config"
	"github.com/kilianp07/cyclecast/core/forecast"
	coremetrics "github.com/kilianp07/cyclecast/core/metrics"
	"github.com/kilianp07/cyclecast/core/predictor"
	"github.com/kilianp07/cyclecast/core/series"
	"github.com/kilianp07/cyclecast/core/train"
	"github.com/kilianp07/cyclecast/infra/logger"
	"github.com/kilianp07/cyclecast/infra/metrics"
	"github.com/kilianp07/cyclecast/infra/mqtt"
	"github.com/kilianp07/cyclecast/infra/plot"
	"github.com/kilianp07/cyclecast/internal/ingest"
	"github.com/kilianp07/cyclecast/internal/store"
	"github.com/kilianp07/cyclecast/pkg/export"
)

// Service wires the store, the training pipeline and the output sinks.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	db        *sql.DB
	store     *store.Store
	sink      coremetrics.MetricsSink
	publisher mqtt.ForecastPublisher
	// engine, when set, replaces the forecaster built from the trained model.
	engine forecast.Engine
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	db, err := sql.Open("sqlite", cfg.Dataset.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL,
			cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub mqtt.ForecastPublisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{
		cfg:       cfg,
		log:       logg,
		db:        db,
		store:     store.New(db),
		sink:      sink,
		publisher: pub,
	}, nil
}

// Fetch downloads the telemetry export and loads it into the store.
func (s *Service) Fetch(ctx context.Context) error {
	if s.cfg.Dataset.URL == "" {
		return fmt.Errorf("dataset.url is required for fetch")
	}
	client := &http.Client{Timeout: 30 * time.Second}
	body, err := ingest.Fetch(ctx, client, s.cfg.Dataset.URL)
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}
	recs, err := ingest.ParseCSV(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}
	if err := s.store.InsertRecords(recs); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}
	s.log.Infof("ingested %d records from %s", len(recs), s.cfg.Dataset.URL)
	return nil
}

// Run trains the predictor on the configured battery, forecasts the next
// cycles and writes the run artifacts.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	batteryID := s.cfg.Dataset.BatteryID
	data, err := s.store.LoadSeries(batteryID)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}
	s.log.Infof("battery %s: %d observations", batteryID, len(data))

	ws, err := series.Windows(data, s.cfg.Training.SampleSize)
	if err != nil {
		return err
	}

	model := predictor.New(predictor.Config{
		HiddenSize: s.cfg.Training.HiddenSize,
		Seed:       s.cfg.Training.Seed,
	})
	trainer := train.New(s.cfg.Training, model, s.sink, logger.New("train"))
	trainer.SetBatteryID(batteryID)
	losses, err := trainer.Run(ctx, ws)
	if err != nil {
		return err
	}

	eng := s.engine
	if eng == nil {
		eng = forecast.New(model, s.cfg.Training.SampleSize, s.store)
	}
	horizon := s.cfg.Training.DaysToPredict
	values, err := eng.ForecastCycles(batteryID, horizon)
	if err != nil {
		return err
	}
	s.log.Infof("run %s: forecast %d days ahead", trainer.RunID(), horizon)

	if err := s.writeArtifacts(batteryID, losses, data, values); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishForecast(trainer.RunID(), batteryID, values); err != nil {
			return fmt.Errorf("publish forecast: %w", err)
		}
	}
	if rec, ok := s.sink.(coremetrics.ForecastRecorder); ok {
		ev := coremetrics.ForecastEvent{
			RunID:     trainer.RunID(),
			BatteryID: batteryID,
			Horizon:   horizon,
			Values:    values,
			Time:      time.Now(),
		}
		if err := rec.RecordForecast(ev); err != nil {
			s.log.Errorf("record forecast: %v", err)
		}
	}
	return nil
}

func (s *Service) writeArtifacts(batteryID string, losses []float64, data series.Series, values []float64) error {
	dir := s.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	last, err := s.store.LastObserved(batteryID)
	if err != nil {
		return fmt.Errorf("last observed: %w", err)
	}
	entries := export.Entries(batteryID, last, values)

	csvFile, err := os.Create(filepath.Join(dir, "forecast.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()
	if err := export.WriteCSV(csvFile, entries); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	jsonFile, err := os.Create(filepath.Join(dir, "forecast.json"))
	if err != nil {
		return err
	}
	defer jsonFile.Close()
	if err := export.WriteJSON(jsonFile, entries); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	if s.cfg.Output.Plots {
		if err := plot.LossCurve(losses, filepath.Join(dir, "loss.png")); err != nil {
			return fmt.Errorf("loss plot: %w", err)
		}
		tail := data.Tail(s.cfg.Training.SampleSize)
		if err := plot.Forecast(tail, values, filepath.Join(dir, "forecast.png")); err != nil {
			return fmt.Errorf("forecast plot: %w", err)
		}
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.log.Errorf("publisher close: %v", err)
		}
	}
	return s.db.Close()
}
