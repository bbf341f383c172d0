package image7color

import (
	"fmt"
	"image/color"
)

// Palette holds one RGB entry per significant color, in AllSignificant order.
//
// A Palette is immutable once built and safe to share.
type Palette struct {
	entries [7][3]uint8
}

// NewPalette blends the measured panel colors with the textbook ones.
//
// saturation 0 matches against pure RGB hues, 1 against what the panel
// actually shows. Each channel is saturated*s + desaturated*(1-s) truncated
// to 8 bits. Values outside [0, 1] are not rejected.
func NewPalette(saturation float32) *Palette {
	p := &Palette{}
	for i, c := range AllSignificant() {
		s, d := c.saturated(), c.desaturated()
		for ch := 0; ch < 3; ch++ {
			// Each product is rounded to float32 on its own; a fused
			// multiply-add on arm64 would round once and shift some entries.
			sat := float32(float32(s[ch]) * saturation)
			desat := float32(float32(d[ch]) * (1.0 - saturation))
			p.entries[i][ch] = uint8(sat + desat)
		}
	}
	return p
}

// Entry returns the RGB triple used for c. Clean and invalid codes have no
// entry and return ok == false.
func (p *Palette) Entry(c Color) (rgb [3]uint8, ok bool) {
	if c >= Clean {
		return [3]uint8{}, false
	}
	return p.entries[c], true
}

// ClosestColor returns the color whose entry is nearest to (r, g, b) by
// squared euclidean distance. Ties go to the lowest index.
func (p *Palette) ClosestColor(r, g, b uint8) Color {
	best := 0
	bestDist := ^uint32(0)
	for i, e := range p.entries {
		dr := absDiff(e[0], r)
		dg := absDiff(e[1], g)
		db := absDiff(e[2], b)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return All()[best]
}

// Convert implements color.Model. Alpha is ignored.
func (p *Palette) Convert(c color.Color) color.Color {
	if c7, ok := c.(Color); ok && c7.Valid() {
		return c7
	}
	r, g, b, _ := c.RGBA()
	return p.ClosestColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func (p *Palette) String() string {
	return fmt.Sprintf("image7color.Palette%v", p.entries)
}

func absDiff(a, b uint8) uint32 {
	if a > b {
		return uint32(a - b)
	}
	return uint32(b - a)
}

// ColorModel converts colors against the fully desaturated palette.
var ColorModel color.Model = NewPalette(0)
