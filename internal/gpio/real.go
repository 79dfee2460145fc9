//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// RealInputs delivers button edges from actual hardware using the Linux GPIO
// character device.
type RealInputs struct {
	lines *gpiocdev.Lines
}

// NewRealInputs requests the three button lines with pull-ups and falling
// edge detection. handler is invoked from the library's event goroutine,
// one event at a time.
func NewRealInputs(chip string, pins InputPins, handler EdgeHandler) (*RealInputs, error) {
	eh := func(evt gpiocdev.LineEvent) {
		in, ok := pins.inputFor(evt.Offset)
		if !ok {
			return
		}
		handler(in, logic.TickOf(evt.Timestamp))
	}

	// Buttons pull the line low when pressed.
	lines, err := gpiocdev.RequestLines(chip,
		[]int{pins.Entry, pins.Exit, pins.Reset},
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(eh),
		gpiocdev.WithConsumer("occupancy-sensor"),
	)
	if err != nil {
		return nil, fmt.Errorf("request input pins %d,%d,%d: %w", pins.Entry, pins.Exit, pins.Reset, err)
	}
	return &RealInputs{lines: lines}, nil
}

// Close releases the button lines.
// Reconfigures them to input with pull-down (matching Pi boot defaults) before
// closing to leave a clean state for reboot.
func (r *RealInputs) Close() error {
	var errs []error
	if err := r.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown, gpiocdev.WithoutEdges); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure input pins: %w", err))
	}
	if err := r.lines.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close input pins: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLight drives the RGB light through three output lines.
type RealLight struct {
	lines *gpiocdev.Lines
}

// NewRealLight requests the light lines as outputs, all off.
func NewRealLight(chip string, pins LightPins) (*RealLight, error) {
	lines, err := gpiocdev.RequestLines(chip,
		[]int{pins.Red, pins.Green, pins.Blue},
		gpiocdev.AsOutput(0, 0, 0),
		gpiocdev.WithConsumer("occupancy-sensor"),
	)
	if err != nil {
		return nil, fmt.Errorf("request light pins %d,%d,%d: %w", pins.Red, pins.Green, pins.Blue, err)
	}
	return &RealLight{lines: lines}, nil
}

// Set switches the color channels for level in a single write.
func (l *RealLight) Set(level logic.Level) error {
	r, g, b := RGB(level)
	if err := l.lines.SetValues([]int{r, g, b}); err != nil {
		return fmt.Errorf("set light %s: %w", level, err)
	}
	return nil
}

// Close turns the light off and releases the lines.
func (l *RealLight) Close() error {
	var errs []error
	if err := l.lines.SetValues([]int{0, 0, 0}); err != nil {
		errs = append(errs, fmt.Errorf("switch off light: %w", err))
	}
	if err := l.lines.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure light pins: %w", err))
	}
	if err := l.lines.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close light pins: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealBuzzer drives an active buzzer on one output line.
type RealBuzzer struct {
	line *gpiocdev.Line
}

// NewRealBuzzer requests the buzzer line as an output, silent.
func NewRealBuzzer(chip string, pin int) (*RealBuzzer, error) {
	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.AsOutput(0),
		gpiocdev.WithConsumer("occupancy-sensor"),
	)
	if err != nil {
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}
	return &RealBuzzer{line: line}, nil
}

// ToneOn starts the tone.
func (b *RealBuzzer) ToneOn() error {
	if err := b.line.SetValue(1); err != nil {
		return fmt.Errorf("buzzer on: %w", err)
	}
	return nil
}

// ToneOff stops the tone.
func (b *RealBuzzer) ToneOff() error {
	if err := b.line.SetValue(0); err != nil {
		return fmt.Errorf("buzzer off: %w", err)
	}
	return nil
}

// Close silences the buzzer and releases the line.
func (b *RealBuzzer) Close() error {
	var errs []error
	if err := b.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("silence buzzer: %w", err))
	}
	if err := b.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
	}
	if err := b.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
