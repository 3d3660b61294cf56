package nn

import "gonum.org/v1/gonum/mat"

// MSE computes the mean squared error between pred and target and, when the
// tape tracks gradients, seeds d(loss)/d(pred) on pred so a subsequent
// Backward call propagates it.
func MSE(t *Tape, pred *Mat, target *mat.Dense) float64 {
	r, c := pred.W.Dims()
	n := float64(r * c)
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := pred.W.At(i, j) - target.At(i, j)
			sum += d * d
			if t.Grad() {
				pred.DW.Set(i, j, pred.DW.At(i, j)+2.0*d/n)
			}
		}
	}
	return sum / n
}
