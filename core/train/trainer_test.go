package train

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/cyclecast/core/predictor"
	"github.com/kilianp07/cyclecast/core/series"
)

func constantSeries(n int, v float64) series.Series {
	s := make(series.Series, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func smallConfig() Config {
	return Config{SampleSize: 10, Epochs: 3, LearningRate: 0.1, HiddenSize: 8, DaysToPredict: 5, Seed: 4}
}

func TestRunProducesOneLossPerEpoch(t *testing.T) {
	cfg := smallConfig()
	ws, err := series.Windows(constantSeries(34, 5), cfg.SampleSize)
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	losses, err := New(cfg, model, nil, nil).Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(losses) != cfg.Epochs {
		t.Fatalf("expected %d loss entries, got %d", cfg.Epochs, len(losses))
	}
}

func TestRunLearnsConstantSeries(t *testing.T) {
	cfg := smallConfig()
	cfg.Epochs = 300
	ws, err := series.Windows(constantSeries(34, 5), cfg.SampleSize)
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	losses, err := New(cfg, model, nil, nil).Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if losses[len(losses)-1] >= losses[0] {
		t.Fatalf("loss did not decrease: first=%v last=%v", losses[0], losses[len(losses)-1])
	}
	if losses[len(losses)-1] > 0.5 {
		t.Fatalf("constant series should train to small loss, got %v", losses[len(losses)-1])
	}
}

func TestRunRejectsShapeMismatch(t *testing.T) {
	cfg := smallConfig()
	ws := &series.WindowSet{
		Input:      mat.NewDense(2, 10, nil),
		Target:     mat.NewDense(2, 9, nil),
		SampleSize: 10,
	}
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	_, err := New(cfg, model, nil, nil).Run(context.Background(), ws)
	var sme ShapeMismatchError
	if !errors.As(err, &sme) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestRunAbortsOnNonFiniteLoss(t *testing.T) {
	cfg := smallConfig()
	s := constantSeries(34, 5)
	s[20] = math.NaN()
	ws, err := series.Windows(s, cfg.SampleSize)
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	losses, err := New(cfg, model, nil, nil).Run(context.Background(), ws)
	var de DivergenceError
	if !errors.As(err, &de) {
		t.Fatalf("expected DivergenceError, got %v", err)
	}
	if de.Epoch != 0 {
		t.Fatalf("expected divergence at epoch 0, got %d", de.Epoch)
	}
	if len(losses) != 0 {
		t.Fatalf("diverged epoch must not enter the loss history, got %d entries", len(losses))
	}
}

func TestRunHonoursContextCancellation(t *testing.T) {
	cfg := smallConfig()
	ws, err := series.Windows(constantSeries(34, 5), cfg.SampleSize)
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	if _, err := New(cfg, model, nil, nil).Run(ctx, ws); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.SampleSize != 250 || cfg.Epochs != 150 || cfg.LearningRate != 0.5 ||
		cfg.HiddenSize != 51 || cfg.DaysToPredict != 30 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	bad := cfg
	bad.LearningRate = -1
	if err := bad.Validate(); err == nil {
		t.Fatalf("negative learning rate must fail validation")
	}
}

func TestRunWithNegativeEpochsReturnsEmptyHistory(t *testing.T) {
	cfg := smallConfig()
	cfg.Epochs = -1
	ws, err := series.Windows(constantSeries(34, 5), cfg.SampleSize)
	if err != nil {
		t.Fatalf("windows: %v", err)
	}
	model := predictor.New(predictor.Config{HiddenSize: cfg.HiddenSize, Seed: cfg.Seed})
	losses, err := New(cfg, model, nil, nil).Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(losses) != 0 {
		t.Fatalf("expected empty loss history, got %d entries", len(losses))
	}
}
