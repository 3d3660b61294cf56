package series

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WindowSet stacks non-overlapping training windows of a series. Row i of
// Input holds a contiguous slice of the series and row i of Target holds the
// same slice shifted forward by one observation, so the target at column k is
// the observation that immediately follows the input at column k.
type WindowSet struct {
	Input      *mat.Dense
	Target     *mat.Dense
	SampleSize int
}

// NumSamples returns the number of windows in the set.
func (w *WindowSet) NumSamples() int {
	r, _ := w.Input.Dims()
	return r
}

// Windows cuts s into non-overlapping windows of sampleSize observations,
// taken from the tail backwards so the most recent data forms sample 0.
// Sample i covers s[L-(i+1)W-2 : L-iW-2] with its target shifted one step
// forward; the last observation of the series therefore never appears as an
// input, and any remainder at the head of the series is dropped. Samples are
// produced while the start offset stays non-negative, giving
// floor((L-2)/W) windows.
func Windows(s Series, sampleSize int) (*WindowSet, error) {
	if sampleSize <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", sampleSize)
	}
	l := len(s)
	if l < sampleSize+2 {
		return nil, InsufficientDataError{Len: l, SampleSize: sampleSize}
	}
	num := (l - 2) / sampleSize

	input := mat.NewDense(num, sampleSize, nil)
	target := mat.NewDense(num, sampleSize, nil)
	for i := 0; i < num; i++ {
		start := l - (i+1)*sampleSize - 2
		input.SetRow(i, s[start:start+sampleSize])
		target.SetRow(i, s[start+1:start+sampleSize+1])
	}
	return &WindowSet{Input: input, Target: target, SampleSize: sampleSize}, nil
}
