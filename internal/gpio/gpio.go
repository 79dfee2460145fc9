// Package gpio provides the edge source, status light and buzzer with
// hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"errors"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// ErrUnsupported is returned by the real drivers on non-Linux platforms.
var ErrUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// EdgeHandler receives one call per falling edge with the kernel timestamp
// converted to a Tick. It is called from a single goroutine.
type EdgeHandler func(in logic.Input, now logic.Tick)

// Inputs watches the entry, exit and reset buttons.
type Inputs interface {
	// Close stops edge delivery and releases the lines.
	Close() error
}

// Light drives the tri-color status light.
type Light interface {
	Set(level logic.Level) error
	Close() error
}

// Buzzer drives an active buzzer.
type Buzzer interface {
	ToneOn() error
	ToneOff() error
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinEntry  = 5
	DefaultPinExit   = 6
	DefaultPinReset  = 22
	DefaultPinRed    = 13
	DefaultPinGreen  = 19
	DefaultPinBlue   = 26
	DefaultPinBuzzer = 21

	DefaultChip = "gpiochip0"
)

// InputPins holds the BCM offsets of the three buttons.
type InputPins struct {
	Entry int
	Exit  int
	Reset int
}

// LightPins holds the BCM offsets of the light's color channels.
type LightPins struct {
	Red   int
	Green int
	Blue  int
}

// RGB returns the on/off value of each color channel for a level.
//
//	EMPTY       -> blue
//	AVAILABLE   -> green
//	ALMOST_FULL -> green + red
//	FULL        -> red
func RGB(level logic.Level) (r, g, b int) {
	switch level {
	case logic.LevelEmpty:
		return 0, 0, 1
	case logic.LevelAvailable:
		return 0, 1, 0
	case logic.LevelAlmostFull:
		return 1, 1, 0
	case logic.LevelFull:
		return 1, 0, 0
	}
	return 0, 0, 0
}

// inputFor maps a line offset back to the input it watches.
func (p InputPins) inputFor(offset int) (logic.Input, bool) {
	switch offset {
	case p.Entry:
		return logic.InputEntry, true
	case p.Exit:
		return logic.InputExit, true
	case p.Reset:
		return logic.InputReset, true
	}
	return 0, false
}
