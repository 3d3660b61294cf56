package series

import "fmt"

// InsufficientDataError reports a series too short to yield a single
// training window.
type InsufficientDataError struct {
	Len        int
	SampleSize int
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("series of length %d cannot fill a window of %d observations (need at least %d)",
		e.Len, e.SampleSize, e.SampleSize+2)
}
