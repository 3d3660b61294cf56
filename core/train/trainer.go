// Package train runs the fixed-epoch gradient descent loop over a window set.
package train

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/cyclecast/core/logger"
	coremetrics "github.com/kilianp07/cyclecast/core/metrics"
	"github.com/kilianp07/cyclecast/core/nn"
	"github.com/kilianp07/cyclecast/core/predictor"
	"github.com/kilianp07/cyclecast/core/series"
)

// Trainer drives the epoch loop: zero gradients, forward with future=0,
// mean squared error, backward, Adam step. There is no early stopping,
// validation split or convergence check.
type Trainer struct {
	cfg   Config
	model *predictor.Model
	sink  coremetrics.MetricsSink
	log   logger.Logger

	runID     string
	batteryID string
}

// New creates a Trainer for the given model. A nil sink or logger falls back
// to no-ops.
func New(cfg Config, model *predictor.Model, sink coremetrics.MetricsSink, log logger.Logger) *Trainer {
	cfg.SetDefaults()
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Trainer{
		cfg:   cfg,
		model: model,
		sink:  sink,
		log:   log,
		runID: uuid.NewString(),
	}
}

// RunID identifies this training run in emitted metrics.
func (t *Trainer) RunID() string { return t.runID }

// SetBatteryID tags emitted metrics with the battery under training.
func (t *Trainer) SetBatteryID(id string) { t.batteryID = id }

// Run executes the configured number of epochs over ws and returns the loss
// history, one entry per epoch. A non-finite loss aborts the run with
// DivergenceError; the partial history up to the failing epoch is returned.
func (t *Trainer) Run(ctx context.Context, ws *series.WindowSet) ([]float64, error) {
	ir, ic := ws.Input.Dims()
	tr, tc := ws.Target.Dims()
	if ir != tr || ic != tc {
		return nil, ShapeMismatchError{InputRows: ir, InputCols: ic, TargetRows: tr, TargetCols: tc}
	}

	t.log.Infof("training run %s: %d samples of %d observations, %d epochs, lr=%v",
		t.runID, ir, ic, t.cfg.Epochs, t.cfg.LearningRate)

	opt := nn.NewAdam(t.cfg.LearningRate)
	params := t.model.Params()
	losses := make([]float64, 0, t.cfg.Epochs)
	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return losses, err
		}
		start := time.Now()

		t.model.ZeroGrads()
		tape := nn.NewTape(true)
		out := t.model.Forward(tape, ws.Input, 0)
		loss := nn.MSE(tape, out, ws.Target)
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			t.recordDivergence(epoch)
			return losses, DivergenceError{Epoch: epoch, Loss: loss}
		}
		tape.Backward()
		opt.Step(params)

		losses = append(losses, loss)
		t.log.Debugf("epoch %d/%d loss=%.6f", epoch+1, t.cfg.Epochs, loss)
		if err := t.sink.RecordTrainingEpoch(coremetrics.TrainingEpochEvent{
			RunID:     t.runID,
			BatteryID: t.batteryID,
			Epoch:     epoch,
			Loss:      loss,
			Duration:  time.Since(start),
			Time:      time.Now(),
		}); err != nil {
			t.log.Warnf("record epoch: %v", err)
		}
	}

	if len(losses) > 0 {
		t.log.Infof("training run %s finished: final loss=%.6f", t.runID, losses[len(losses)-1])
	}
	return losses, nil
}

func (t *Trainer) recordDivergence(epoch int) {
	if rec, ok := t.sink.(coremetrics.DivergenceRecorder); ok {
		if err := rec.RecordDivergence(coremetrics.DivergenceEvent{
			RunID:     t.runID,
			BatteryID: t.batteryID,
			Epoch:     epoch,
			Time:      time.Now(),
		}); err != nil {
			t.log.Warnf("record divergence: %v", err)
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
