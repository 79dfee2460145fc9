//go:build !linux

package gpio

import "github.com/sweeney/occupancy-sensor/internal/logic"

// RealInputs is not available on non-Linux platforms.
type RealInputs struct{}

// NewRealInputs returns an error on non-Linux platforms.
func NewRealInputs(chip string, pins InputPins, handler EdgeHandler) (*RealInputs, error) {
	return nil, ErrUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealInputs) Close() error { return nil }

// RealLight is not available on non-Linux platforms.
type RealLight struct{}

// NewRealLight returns an error on non-Linux platforms.
func NewRealLight(chip string, pins LightPins) (*RealLight, error) {
	return nil, ErrUnsupported
}

// Set is not implemented on non-Linux platforms.
func (l *RealLight) Set(level logic.Level) error { return ErrUnsupported }

// Close is not implemented on non-Linux platforms.
func (l *RealLight) Close() error { return nil }

// RealBuzzer is not available on non-Linux platforms.
type RealBuzzer struct{}

// NewRealBuzzer returns an error on non-Linux platforms.
func NewRealBuzzer(chip string, pin int) (*RealBuzzer, error) {
	return nil, ErrUnsupported
}

// ToneOn is not implemented on non-Linux platforms.
func (b *RealBuzzer) ToneOn() error { return ErrUnsupported }

// ToneOff is not implemented on non-Linux platforms.
func (b *RealBuzzer) ToneOff() error { return ErrUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *RealBuzzer) Close() error { return nil }
