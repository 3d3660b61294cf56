package nn

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// numericalGrad perturbs one weight and measures the loss difference.
func numericalGrad(f func() float64, w *mat.Dense, i, j int) float64 {
	const h = 1e-6
	orig := w.At(i, j)
	w.Set(i, j, orig+h)
	up := f()
	w.Set(i, j, orig-h)
	down := f()
	w.Set(i, j, orig)
	return (up - down) / (2 * h)
}

func TestBackwardMatchesNumericalGradient(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := mat.NewDense(3, 2, nil)
	target := mat.NewDense(3, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
		for j := 0; j < 4; j++ {
			target.Set(i, j, rng.NormFloat64())
		}
	}
	w := NewXavierMat(2, 4, rng)
	u := NewXavierMat(4, 4, rng)
	b := NewXavierMat(1, 4, rng)

	loss := func() float64 {
		tape := NewTape(false)
		h := tape.Tanh(tape.AddBias(tape.MatMul(NewMatFrom(x), w), b))
		g := tape.Sigmoid(tape.MatMul(h, u))
		y := tape.Hadamard(h, g)
		return MSE(tape, y, target)
	}

	tape := NewTape(true)
	h := tape.Tanh(tape.AddBias(tape.MatMul(NewMatFrom(x), w), b))
	g := tape.Sigmoid(tape.MatMul(h, u))
	y := tape.Hadamard(h, g)
	MSE(tape, y, target)
	tape.Backward()

	checks := []struct {
		name string
		p    *Mat
		i, j int
	}{
		{"w00", w, 0, 0}, {"w13", w, 1, 3},
		{"u21", u, 2, 1}, {"u33", u, 3, 3},
		{"b02", b, 0, 2},
	}
	for _, c := range checks {
		want := numericalGrad(loss, c.p.W, c.i, c.j)
		got := c.p.DW.At(c.i, c.j)
		if math.Abs(got-want) > 1e-5*math.Max(1, math.Abs(want)) {
			t.Fatalf("%s: analytic grad %v, numerical %v", c.name, got, want)
		}
	}
}

func TestConcatColsGradientRouting(t *testing.T) {
	tape := NewTape(true)
	a := NewMatFrom(mat.NewDense(2, 1, []float64{1, 2}))
	b := NewMatFrom(mat.NewDense(2, 1, []float64{3, 4}))
	out := tape.ConcatCols(a, b)
	if r, c := out.Dims(); r != 2 || c != 2 {
		t.Fatalf("unexpected dims %dx%d", r, c)
	}
	out.DW.Set(0, 0, 1)
	out.DW.Set(1, 1, 5)
	tape.Backward()
	if a.DW.At(0, 0) != 1 || b.DW.At(1, 0) != 5 {
		t.Fatalf("gradients not routed to source columns: %v %v", a.DW.At(0, 0), b.DW.At(1, 0))
	}
}

func TestNoGradTapeRecordsNothing(t *testing.T) {
	tape := NewTape(false)
	a := NewMatFrom(mat.NewDense(1, 1, []float64{2}))
	w := NewMat(1, 1)
	w.W.Set(0, 0, 3)
	out := tape.MatMul(a, w)
	MSE(tape, out, mat.NewDense(1, 1, []float64{0}))
	tape.Backward()
	if w.DW.At(0, 0) != 0 {
		t.Fatalf("no-grad tape must not accumulate gradients, got %v", w.DW.At(0, 0))
	}
}

func TestMSEValue(t *testing.T) {
	tape := NewTape(false)
	pred := NewMatFrom(mat.NewDense(1, 2, []float64{1, 3}))
	loss := MSE(tape, pred, mat.NewDense(1, 2, []float64{0, 0}))
	if math.Abs(loss-5.0) > 1e-12 {
		t.Fatalf("expected mse 5.0, got %v", loss)
	}
}
