package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adam implements the Adam optimizer with bias-corrected first and second
// moment estimates, keyed per parameter matrix.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	step int
	m    map[*Mat]*mat.Dense
	v    map[*Mat]*mat.Dense
}

// NewAdam creates an Adam optimizer with the usual moment decay constants.
func NewAdam(learningRate float64) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		m:            make(map[*Mat]*mat.Dense),
		v:            make(map[*Mat]*mat.Dense),
	}
}

// Step applies one update to every parameter from its accumulated gradient.
// Gradients are left untouched; callers zero them before the next forward.
func (a *Adam) Step(params []*Mat) {
	a.step++
	c1 := 1.0 - math.Pow(a.Beta1, float64(a.step))
	c2 := 1.0 - math.Pow(a.Beta2, float64(a.step))
	for _, p := range params {
		r, c := p.W.Dims()
		if a.m[p] == nil {
			a.m[p] = mat.NewDense(r, c, nil)
			a.v[p] = mat.NewDense(r, c, nil)
		}
		w := p.W.RawMatrix().Data
		g := p.DW.RawMatrix().Data
		m := a.m[p].RawMatrix().Data
		v := a.v[p].RawMatrix().Data
		for i := range w {
			m[i] = a.Beta1*m[i] + (1.0-a.Beta1)*g[i]
			v[i] = a.Beta2*v[i] + (1.0-a.Beta2)*g[i]*g[i]
			mhat := m[i] / c1
			vhat := v[i] / c2
			w[i] -= a.LearningRate * mhat / (math.Sqrt(vhat) + a.Epsilon)
		}
	}
}
