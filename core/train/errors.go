package train

import "fmt"

// ShapeMismatchError reports input and target tensors whose dimensions
// disagree before training starts.
type ShapeMismatchError struct {
	InputRows, InputCols   int
	TargetRows, TargetCols int
}

func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("input tensor %dx%d does not match target tensor %dx%d",
		e.InputRows, e.InputCols, e.TargetRows, e.TargetCols)
}

// DivergenceError reports a non-finite loss. Continuing would propagate NaNs
// through every remaining epoch, so the run aborts instead.
type DivergenceError struct {
	Epoch int
	Loss  float64
}

func (e DivergenceError) Error() string {
	return fmt.Sprintf("training diverged at epoch %d (loss=%v)", e.Epoch, e.Loss)
}
