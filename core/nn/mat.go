package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Mat pairs a value matrix with its gradient accumulator. All values are
// float64; extended autoregressive horizons accumulate error too quickly in
// lower precision.
type Mat struct {
	W  *mat.Dense
	DW *mat.Dense
}

// NewMat allocates a zero-valued matrix with a matching gradient buffer.
func NewMat(r, c int) *Mat {
	return &Mat{W: mat.NewDense(r, c, nil), DW: mat.NewDense(r, c, nil)}
}

// NewMatFrom wraps an existing value matrix. The wrapped matrix is not
// copied; callers must not mutate it while the tape is alive.
func NewMatFrom(w *mat.Dense) *Mat {
	r, c := w.Dims()
	return &Mat{W: w, DW: mat.NewDense(r, c, nil)}
}

// NewXavierMat allocates a matrix initialised with Xavier/Glorot normal
// weights drawn from rng.
func NewXavierMat(r, c int, rng *rand.Rand) *Mat {
	scale := math.Sqrt(2.0 / float64(r+c))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
	return &Mat{W: mat.NewDense(r, c, data), DW: mat.NewDense(r, c, nil)}
}

// Dims returns the matrix dimensions.
func (m *Mat) Dims() (int, int) { return m.W.Dims() }

// ZeroGrad resets the gradient accumulator.
func (m *Mat) ZeroGrad() { m.DW.Zero() }
