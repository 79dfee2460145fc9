// Package console renders the display, status light and buzzer as lines of
// text on a terminal. It is used by the simulator in place of the hardware.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sweeney/occupancy-sensor/internal/display"
	"github.com/sweeney/occupancy-sensor/internal/logic"
)

// Terminal serializes writes from the console drivers sharing one writer.
// Lines end in "\r\n" so they stay aligned while the keyboard is in raw mode.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Write writes p with every "\n" turned into "\r\n", so a logger can share
// the terminal with the drivers.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := strings.ReplaceAll(strings.ReplaceAll(string(p), "\r\n", "\n"), "\n", "\r\n")
	if _, err := io.WriteString(t.out, s); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Printf writes one line.
func (t *Terminal) Printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format+"\r\n", args...)
}

// Display prints every flushed frame on one line, top to bottom.
type Display struct {
	term  *Terminal
	mu    sync.Mutex
	frame []display.Text
}

// NewDisplay creates a console display.
func NewDisplay(term *Terminal) *Display {
	return &Display{term: term}
}

// Clear empties the frame buffer.
func (d *Display) Clear() {
	d.mu.Lock()
	d.frame = d.frame[:0]
	d.mu.Unlock()
}

// DrawText adds text to the frame buffer.
func (d *Display) DrawText(text string, x, y int) {
	d.mu.Lock()
	d.frame = append(d.frame, display.Text{Text: text, X: x, Y: y})
	d.mu.Unlock()
}

// Flush prints the frame.
func (d *Display) Flush() error {
	d.mu.Lock()
	parts := make([]string, len(d.frame))
	for i, t := range d.frame {
		parts[i] = t.Text
	}
	d.mu.Unlock()

	d.term.Printf("[display] %s", strings.Join(parts, " | "))
	return nil
}

// Light prints each level change.
type Light struct {
	term *Terminal
}

// NewLight creates a console light.
func NewLight(term *Terminal) *Light {
	return &Light{term: term}
}

// Set prints level and the colors that would be lit.
func (l *Light) Set(level logic.Level) error {
	l.term.Printf("[light]   %s (%s)", level, ColorName(level))
	return nil
}

// Close does nothing.
func (l *Light) Close() error {
	return nil
}

// ColorName describes the light color for a level.
func ColorName(level logic.Level) string {
	switch level {
	case logic.LevelEmpty:
		return "blue"
	case logic.LevelAvailable:
		return "green"
	case logic.LevelAlmostFull:
		return "yellow"
	case logic.LevelFull:
		return "red"
	}
	return "off"
}

// Buzzer prints tone switching. With Bell set, ToneOn also rings the
// terminal bell.
type Buzzer struct {
	term *Terminal
	Bell bool
}

// NewBuzzer creates a console buzzer.
func NewBuzzer(term *Terminal) *Buzzer {
	return &Buzzer{term: term}
}

// ToneOn prints the start of a tone.
func (b *Buzzer) ToneOn() error {
	if b.Bell {
		b.term.Printf("\a[buzzer]  on")
	} else {
		b.term.Printf("[buzzer]  on")
	}
	return nil
}

// ToneOff prints the end of a tone.
func (b *Buzzer) ToneOff() error {
	b.term.Printf("[buzzer]  off")
	return nil
}

// Close does nothing.
func (b *Buzzer) Close() error {
	return nil
}
