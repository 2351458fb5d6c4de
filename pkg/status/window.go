package status

import "time"

// ⏱️ Window is a bounded FIFO of recent per-image durations used as a
// trailing moving average for the remaining-time projection.
type Window struct {
	max  int
	vals []time.Duration
}

// NewWindow creates a Window holding at most max entries.
func NewWindow(max int) *Window {
	return &Window{max: max}
}

// Push appends a duration, evicting the oldest entry once the bound is hit.
func (w *Window) Push(d time.Duration) {
	if len(w.vals) == w.max {
		w.vals = w.vals[1:]
	}
	w.vals = append(w.vals, d)
}

// Len returns the current number of entries.
func (w *Window) Len() int {
	return len(w.vals)
}

// Average returns the mean of the held durations. ok is false while the
// window is empty, in which case no projection can be made.
func (w *Window) Average() (avg time.Duration, ok bool) {
	if len(w.vals) == 0 {
		return 0, false
	}
	var sum time.Duration
	for _, v := range w.vals {
		sum += v
	}
	return sum / time.Duration(len(w.vals)), true
}
