package logic

import "time"

// DefaultDebounce is the quiet period applied to every input.
const DefaultDebounce = 200 * time.Millisecond

// Filter suppresses edges that arrive within the debounce window of the last
// accepted edge on the same input.
//
// Filter does not allocate or block. It is not safe for concurrent use: edge
// delivery is serialized by the caller, the same way interrupts are
// serialized against themselves.
type Filter struct {
	window Tick
	last   [numInputs]Tick
}

// NewFilter creates a filter with the given debounce window.
// All inputs start with a last-accepted tick of 0.
func NewFilter(window time.Duration) *Filter {
	return &Filter{window: TickOf(window)}
}

// Accept reports whether an edge on in at now passes the filter, recording
// now as the last accepted tick when it does. The comparison uses wrapping
// subtraction, so a clock rollover between two edges is harmless.
func (f *Filter) Accept(in Input, now Tick) bool {
	if !in.Valid() {
		return false
	}
	if now-f.last[in] < f.window {
		return false
	}
	f.last[in] = now
	return true
}

// Window returns the debounce window.
func (f *Filter) Window() time.Duration {
	return time.Duration(f.window) * time.Millisecond
}
