package image7color

import (
	"fmt"
	"strings"
)

// Color is one of the native color codes of the UC8159 7-color panel.
//
// The value is the 4-bit code the controller expects in its frame memory.
type Color uint8

// Native colors, in the order the controller numbers them.
const (
	Black Color = iota
	White
	Green
	Blue
	Red
	Yellow
	Orange
	// Clean is not a printable color. The controller uses it to clear the
	// panel and it is never returned by a palette lookup.
	Clean
)

var colorNames = [...]string{"black", "white", "green", "blue", "red", "yellow", "orange", "clean"}

// All returns the 8 colors in code order.
func All() [8]Color {
	return [8]Color{Black, White, Green, Blue, Red, Yellow, Orange, Clean}
}

// AllSignificant returns the 7 printable colors, excluding Clean.
func AllSignificant() [7]Color {
	return [7]Color{Black, White, Green, Blue, Red, Yellow, Orange}
}

// Valid reports whether c is a code the panel understands.
func (c Color) Valid() bool {
	return c <= Clean
}

// RGBA implements color.Color using the desaturated reference of c.
func (c Color) RGBA() (r, g, b, a uint32) {
	rgb := c.desaturated()
	// Scale 8-bit to 16-bit: 0xFF * 0x101 = 0xFFFF.
	return uint32(rgb[0]) * 0x101, uint32(rgb[1]) * 0x101, uint32(rgb[2]) * 0x101, 0xFFFF
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("image7color: invalid color %d", uint8(c))
	}
	return []byte(colorNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (c *Color) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range colorNames {
		if n == name {
			*c = Color(i)
			return nil
		}
	}
	return fmt.Errorf("image7color: unknown color %q", string(text))
}

// desaturated returns the textbook RGB value of c.
func (c Color) desaturated() [3]uint8 {
	switch c {
	case Black:
		return [3]uint8{0, 0, 0}
	case Green:
		return [3]uint8{0, 255, 0}
	case Blue:
		return [3]uint8{0, 0, 255}
	case Red:
		return [3]uint8{255, 0, 0}
	case Yellow:
		return [3]uint8{255, 255, 0}
	case Orange:
		return [3]uint8{255, 140, 0}
	default: // White, Clean
		return [3]uint8{255, 255, 255}
	}
}

// saturated returns the RGB value measured on a real panel for c.
func (c Color) saturated() [3]uint8 {
	switch c {
	case Black:
		return [3]uint8{57, 48, 57}
	case Green:
		return [3]uint8{58, 91, 70}
	case Blue:
		return [3]uint8{61, 59, 94}
	case Red:
		return [3]uint8{156, 72, 75}
	case Yellow:
		return [3]uint8{208, 190, 71}
	case Orange:
		return [3]uint8{77, 106, 73}
	default: // White, Clean
		return [3]uint8{255, 255, 255}
	}
}
