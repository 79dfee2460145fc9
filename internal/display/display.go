// Package display provides the two-line status display.
// The real implementation drives an SSD1306 OLED over I2C through periph.io.
// The fake implementation records frames for tests.
package display

// Display is a frame-buffered text display.
// Clear and DrawText only touch the frame buffer; Flush sends it to the panel.
type Display interface {
	Clear()
	DrawText(text string, x, y int)
	Flush() error
}

// Text is one string placed on the frame buffer.
type Text struct {
	Text string
	X, Y int
}
