// Package predictor implements a two-layer LSTM sequence model with a scalar
// linear head. Parameters live in an explicit struct and the forward pass is
// a pure function over them; there is no hidden state outside a single
// Forward call.
package predictor

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/cyclecast/core/nn"
)

// Config sizes the model.
type Config struct {
	// HiddenSize is the width of both LSTM layers.
	HiddenSize int `json:"hidden_size"`
	// Seed makes weight initialisation reproducible.
	Seed int64 `json:"seed"`
}

// SetDefaults applies the standard model geometry.
func (c *Config) SetDefaults() {
	if c.HiddenSize == 0 {
		c.HiddenSize = 51
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// cell holds the gate parameters of one LSTM layer: input weights W,
// recurrent weights U and bias B for the input (i), forget (f), candidate (g)
// and output (o) gates.
type cell struct {
	Wi, Ui, Bi *nn.Mat
	Wf, Uf, Bf *nn.Mat
	Wg, Ug, Bg *nn.Mat
	Wo, Uo, Bo *nn.Mat
}

func newCell(inputSize, hiddenSize int, rng *rand.Rand) cell {
	gate := func() (*nn.Mat, *nn.Mat, *nn.Mat) {
		return nn.NewXavierMat(inputSize, hiddenSize, rng),
			nn.NewXavierMat(hiddenSize, hiddenSize, rng),
			nn.NewMat(1, hiddenSize)
	}
	var c cell
	c.Wi, c.Ui, c.Bi = gate()
	c.Wf, c.Uf, c.Bf = gate()
	c.Wg, c.Ug, c.Bg = gate()
	c.Wo, c.Uo, c.Bo = gate()
	return c
}

func (c cell) params() []*nn.Mat {
	return []*nn.Mat{
		c.Wi, c.Ui, c.Bi,
		c.Wf, c.Uf, c.Bf,
		c.Wg, c.Ug, c.Bg,
		c.Wo, c.Uo, c.Bo,
	}
}

// Model is the full parameter set: two stacked LSTM cells and a linear
// projection to one scalar per time step.
type Model struct {
	Hidden int
	L1, L2 cell
	HeadW  *nn.Mat
	HeadB  *nn.Mat
}

// New builds a model with Xavier-initialised weights and zero biases.
func New(cfg Config) *Model {
	cfg.SetDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Model{
		Hidden: cfg.HiddenSize,
		L1:     newCell(1, cfg.HiddenSize, rng),
		L2:     newCell(cfg.HiddenSize, cfg.HiddenSize, rng),
		HeadW:  nn.NewXavierMat(cfg.HiddenSize, 1, rng),
		HeadB:  nn.NewMat(1, 1),
	}
}

// Params lists every trainable matrix.
func (m *Model) Params() []*nn.Mat {
	p := m.L1.params()
	p = append(p, m.L2.params()...)
	return append(p, m.HeadW, m.HeadB)
}

// ZeroGrads resets all gradient accumulators.
func (m *Model) ZeroGrads() {
	for _, p := range m.Params() {
		p.ZeroGrad()
	}
}

// step advances one LSTM layer by a single time step.
func step(t *nn.Tape, c cell, x, h, cs *nn.Mat) (*nn.Mat, *nn.Mat) {
	i := t.Sigmoid(t.AddBias(t.Add(t.MatMul(x, c.Wi), t.MatMul(h, c.Ui)), c.Bi))
	f := t.Sigmoid(t.AddBias(t.Add(t.MatMul(x, c.Wf), t.MatMul(h, c.Uf)), c.Bf))
	g := t.Tanh(t.AddBias(t.Add(t.MatMul(x, c.Wg), t.MatMul(h, c.Ug)), c.Bg))
	o := t.Sigmoid(t.AddBias(t.Add(t.MatMul(x, c.Wo), t.MatMul(h, c.Uo)), c.Bo))
	cs = t.Add(t.Hadamard(f, cs), t.Hadamard(i, g))
	h = t.Hadamard(o, t.Tanh(cs))
	return h, cs
}

// Forward runs the model over input, one column per time step, and returns
// the predicted sequence stacked along the time axis. Hidden and cell state
// of both layers start at zero on every invocation. When future > 0 the
// chain continues for that many extra steps, feeding each prediction back in
// as the next input, so the output has inputLen+future columns. The input
// must contain at least one time step; the continuation seeds from the last
// prediction.
func (m *Model) Forward(t *nn.Tape, input *mat.Dense, future int) *nn.Mat {
	batch, steps := input.Dims()
	if steps == 0 {
		panic("predictor: Forward requires a non-empty input sequence")
	}

	h1 := nn.NewMat(batch, m.Hidden)
	c1 := nn.NewMat(batch, m.Hidden)
	h2 := nn.NewMat(batch, m.Hidden)
	c2 := nn.NewMat(batch, m.Hidden)

	outs := make([]*nn.Mat, 0, steps+future)
	var y *nn.Mat
	for s := 0; s < steps; s++ {
		x := nn.NewMatFrom(mat.DenseCopyOf(input.Slice(0, batch, s, s+1)))
		h1, c1 = step(t, m.L1, x, h1, c1)
		h2, c2 = step(t, m.L2, h1, h2, c2)
		y = t.AddBias(t.MatMul(h2, m.HeadW), m.HeadB)
		outs = append(outs, y)
	}
	for s := 0; s < future; s++ {
		h1, c1 = step(t, m.L1, y, h1, c1)
		h2, c2 = step(t, m.L2, h1, h2, c2)
		y = t.AddBias(t.MatMul(h2, m.HeadW), m.HeadB)
		outs = append(outs, y)
	}
	return t.ConcatCols(outs...)
}
