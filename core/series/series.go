// Package series holds the observed cycle-usage history of a single battery
// and turns it into fixed-length training windows.
package series

// Series is an ordered sequence of daily observations for one battery.
// It is never mutated after loading.
type Series []float64

// Tail returns the trailing n observations.
func (s Series) Tail(n int) Series {
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
