package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// SSD1306 is a 128x64 monochrome OLED on I2C.
type SSD1306 struct {
	bus  i2c.BusCloser
	dev  *ssd1306.Dev
	img  *image1bit.VerticalLSB
	face *basicfont.Face
}

// OpenSSD1306 initializes the host drivers, opens the named I2C bus ("" for
// the first available) and clears the panel.
func OpenSSD1306(busName string) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	d := &SSD1306{
		bus:  bus,
		dev:  dev,
		img:  image1bit.NewVerticalLSB(dev.Bounds()),
		face: basicfont.Face7x13,
	}
	if err := d.Flush(); err != nil {
		dev.Halt()
		bus.Close()
		return nil, err
	}
	return d, nil
}

// Clear blanks the frame buffer.
func (d *SSD1306) Clear() {
	for i := range d.img.Pix {
		d.img.Pix[i] = 0
	}
}

// DrawText draws text with its top-left corner at (x, y).
func (d *SSD1306) DrawText(text string, x, y int) {
	drawer := font.Drawer{
		Dst:  d.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: d.face,
		Dot:  fixed.P(x, y+d.face.Ascent),
	}
	drawer.DrawString(text)
}

// Flush sends the frame buffer to the panel.
func (d *SSD1306) Flush() error {
	if err := d.dev.Draw(d.dev.Bounds(), d.img, image.Point{}); err != nil {
		return fmt.Errorf("draw ssd1306: %w", err)
	}
	return nil
}

// Close blanks and halts the panel, then releases the bus.
func (d *SSD1306) Close() error {
	var errs []error
	d.Clear()
	if err := d.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := d.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt ssd1306: %w", err))
	}
	if err := d.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
