package display

import (
	"sync"
	"sync/atomic"
)

// Fake records every flushed frame. It also detects overlapping frames: a
// Clear or DrawText arriving while another goroutine's frame is open marks
// the display as interleaved.
type Fake struct {
	mu      sync.Mutex
	current []Text
	frames  [][]Text

	open        atomic.Int32
	interleaved atomic.Bool

	// FlushError, if set, will be returned by Flush (the frame is discarded).
	FlushError error
}

// NewFake creates an empty Fake display.
func NewFake() *Fake {
	return &Fake{}
}

// Clear starts a new frame.
func (f *Fake) Clear() {
	if f.open.Add(1) > 1 {
		f.interleaved.Store(true)
	}
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
}

// DrawText adds text to the current frame.
func (f *Fake) DrawText(text string, x, y int) {
	f.mu.Lock()
	f.current = append(f.current, Text{Text: text, X: x, Y: y})
	f.mu.Unlock()
}

// Flush closes the current frame and records it.
func (f *Fake) Flush() error {
	defer f.open.Add(-1)

	f.mu.Lock()
	defer f.mu.Unlock()
	frame := f.current
	f.current = nil
	if f.FlushError != nil {
		return f.FlushError
	}
	f.frames = append(f.frames, frame)
	return nil
}

// Frames returns a copy of all flushed frames.
func (f *Fake) Frames() [][]Text {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]Text, len(f.frames))
	for i, fr := range f.frames {
		out[i] = append([]Text(nil), fr...)
	}
	return out
}

// Last returns the most recent frame, or nil.
func (f *Fake) Last() []Text {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.frames) == 0 {
		return nil
	}
	return append([]Text(nil), f.frames[len(f.frames)-1]...)
}

// Interleaved reports whether two frames were ever open at once.
func (f *Fake) Interleaved() bool {
	return f.interleaved.Load()
}
