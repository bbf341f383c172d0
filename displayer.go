package uc8159

import (
	"image/color"

	"tinygo.org/x/drivers"

	"periph.io/x/devices/v3/uc8159/image7color"
)

// Displayer returns a tinygo drivers.Displayer backed by the frame memory,
// so tinyfont and other TinyGo drawing code can render onto the panel.
// SetPixel maps colors through p; Display calls Show.
func (d *Dev) Displayer(p *image7color.Palette) drivers.Displayer {
	return &displayer{dev: d, pal: p}
}

type displayer struct {
	dev *Dev
	pal *image7color.Palette
}

func (t *displayer) Size() (x, y int16) {
	return Width, Height
}

func (t *displayer) SetPixel(x, y int16, c color.RGBA) {
	t.dev.SetPixel(int(x), int(y), t.pal.ClosestColor(c.R, c.G, c.B))
}

func (t *displayer) Display() error {
	return t.dev.Show()
}
