package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Tape records the backward closures of a forward evaluation. A tape created
// with grad=false skips recording entirely, which makes inference passes
// side-effect free with respect to gradients.
type Tape struct {
	grad  bool
	backs []func()
}

// NewTape creates a tape. Gradient tracking is enabled only when grad is true.
func NewTape(grad bool) *Tape { return &Tape{grad: grad} }

// Grad reports whether the tape tracks gradients.
func (t *Tape) Grad() bool { return t.grad }

func (t *Tape) push(f func()) {
	if t.grad {
		t.backs = append(t.backs, f)
	}
}

// Backward replays the recorded closures in reverse order, accumulating
// gradients into every Mat touched by the forward pass. Loss gradients must
// be seeded on the output before calling it.
func (t *Tape) Backward() {
	for i := len(t.backs) - 1; i >= 0; i-- {
		t.backs[i]()
	}
	t.backs = t.backs[:0]
}

// MatMul returns a*b.
func (t *Tape) MatMul(a, b *Mat) *Mat {
	ar, _ := a.W.Dims()
	_, bc := b.W.Dims()
	out := NewMat(ar, bc)
	out.W.Mul(a.W, b.W)
	t.push(func() {
		var da, db mat.Dense
		da.Mul(out.DW, b.W.T())
		a.DW.Add(a.DW, &da)
		db.Mul(a.W.T(), out.DW)
		b.DW.Add(b.DW, &db)
	})
	return out
}

// Add returns the elementwise sum of two equally shaped matrices.
func (t *Tape) Add(a, b *Mat) *Mat {
	r, c := a.W.Dims()
	out := NewMat(r, c)
	out.W.Add(a.W, b.W)
	t.push(func() {
		a.DW.Add(a.DW, out.DW)
		b.DW.Add(b.DW, out.DW)
	})
	return out
}

// AddBias adds a 1xC bias row to every row of a.
func (t *Tape) AddBias(a, bias *Mat) *Mat {
	r, c := a.W.Dims()
	out := NewMat(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.W.Set(i, j, a.W.At(i, j)+bias.W.At(0, j))
		}
	}
	t.push(func() {
		a.DW.Add(a.DW, out.DW)
		for j := 0; j < c; j++ {
			sum := bias.DW.At(0, j)
			for i := 0; i < r; i++ {
				sum += out.DW.At(i, j)
			}
			bias.DW.Set(0, j, sum)
		}
	})
	return out
}

// Hadamard returns the elementwise product of two equally shaped matrices.
func (t *Tape) Hadamard(a, b *Mat) *Mat {
	r, c := a.W.Dims()
	out := NewMat(r, c)
	out.W.MulElem(a.W, b.W)
	t.push(func() {
		var da, db mat.Dense
		da.MulElem(out.DW, b.W)
		a.DW.Add(a.DW, &da)
		db.MulElem(out.DW, a.W)
		b.DW.Add(b.DW, &db)
	})
	return out
}

// Sigmoid applies the logistic function elementwise.
func (t *Tape) Sigmoid(a *Mat) *Mat {
	r, c := a.W.Dims()
	out := NewMat(r, c)
	out.W.Apply(func(_, _ int, v float64) float64 {
		return 1.0 / (1.0 + math.Exp(-v))
	}, a.W)
	t.push(func() {
		var da mat.Dense
		da.Apply(func(i, j int, y float64) float64 {
			return out.DW.At(i, j) * y * (1.0 - y)
		}, out.W)
		a.DW.Add(a.DW, &da)
	})
	return out
}

// Tanh applies the hyperbolic tangent elementwise.
func (t *Tape) Tanh(a *Mat) *Mat {
	r, c := a.W.Dims()
	out := NewMat(r, c)
	out.W.Apply(func(_, _ int, v float64) float64 {
		return math.Tanh(v)
	}, a.W)
	t.push(func() {
		var da mat.Dense
		da.Apply(func(i, j int, y float64) float64 {
			return out.DW.At(i, j) * (1.0 - y*y)
		}, out.W)
		a.DW.Add(a.DW, &da)
	})
	return out
}

// ConcatCols stacks single-column matrices into one matrix along the column
// axis, preserving gradient flow back into each column.
func (t *Tape) ConcatCols(cols ...*Mat) *Mat {
	r, _ := cols[0].W.Dims()
	out := NewMat(r, len(cols))
	for j, col := range cols {
		for i := 0; i < r; i++ {
			out.W.Set(i, j, col.W.At(i, 0))
		}
	}
	t.push(func() {
		for j, col := range cols {
			for i := 0; i < r; i++ {
				col.DW.Set(i, 0, col.DW.At(i, 0)+out.DW.At(i, j))
			}
		}
	})
	return out
}
