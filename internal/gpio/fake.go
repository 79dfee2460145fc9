package gpio

import (
	"sync"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// FakeInputs is a test double that delivers scripted edges to a handler.
type FakeInputs struct {
	handler EdgeHandler
	mu      sync.Mutex

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeInputs creates FakeInputs delivering to handler.
func NewFakeInputs(handler EdgeHandler) *FakeInputs {
	return &FakeInputs{handler: handler}
}

// Press delivers one falling edge on in at now.
// Edges are serialized, like the real event goroutine.
func (f *FakeInputs) Press(in logic.Input, now logic.Tick) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Closed {
		return
	}
	f.handler(in, now)
}

// Close stops edge delivery.
func (f *FakeInputs) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// FakeLight records every level it is set to.
type FakeLight struct {
	mu     sync.Mutex
	levels []logic.Level

	// SetError, if set, will be returned by Set (the level is still recorded).
	SetError error

	Closed bool
}

// NewFakeLight creates a FakeLight.
func NewFakeLight() *FakeLight {
	return &FakeLight{}
}

// Set records level.
func (f *FakeLight) Set(level logic.Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append(f.levels, level)
	return f.SetError
}

// Levels returns a copy of every level set so far.
func (f *FakeLight) Levels() []logic.Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]logic.Level(nil), f.levels...)
}

// Last returns the most recent level, or "" if none.
func (f *FakeLight) Last() logic.Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.levels) == 0 {
		return ""
	}
	return f.levels[len(f.levels)-1]
}

// Close marks the light as closed.
func (f *FakeLight) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// FakeBuzzer records tone switching.
type FakeBuzzer struct {
	mu    sync.Mutex
	calls []bool // true = on, false = off
	on    bool

	Closed bool
}

// NewFakeBuzzer creates a FakeBuzzer.
func NewFakeBuzzer() *FakeBuzzer {
	return &FakeBuzzer{}
}

// ToneOn records a tone start.
func (f *FakeBuzzer) ToneOn() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, true)
	f.on = true
	return nil
}

// ToneOff records a tone stop.
func (f *FakeBuzzer) ToneOff() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, false)
	f.on = false
	return nil
}

// Pulses returns the number of completed on/off pairs.
func (f *FakeBuzzer) Pulses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for i := 1; i < len(f.calls); i++ {
		if f.calls[i-1] && !f.calls[i] {
			n++
		}
	}
	return n
}

// On reports whether the tone is currently on.
func (f *FakeBuzzer) On() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

// Close marks the buzzer as closed.
func (f *FakeBuzzer) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}
