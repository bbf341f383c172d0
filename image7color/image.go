package image7color

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrInvalidSize is returned when bulk data does not cover the image exactly.
var ErrInvalidSize = errors.New("image7color: invalid buffer size")

// Image is a 7-color image stored in horizontal nibble packing, the layout
// of the UC8159 frame memory.
// Each byte contains 2 pixels: high nibble = left (even x), low nibble = right (odd x).
type Image struct {
	Pix    []byte          // Pixel data (2 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds, every pixel Black.
// The width must be even.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	if w%2 != 0 {
		panic("image7color: width must be even")
	}
	stride := w / 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return ColorModel
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.ColorAt(x, y)
}

// ColorAt returns the color of the pixel at (x, y), Black when out of bounds.
func (p *Image) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset, shift := p.pixOffset(x, y)
	return Color((p.Pix[offset] >> shift) & 0x0F)
}

// Set implements draw.Image, converting c with ColorModel.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetColor(x, y, ColorModel.Convert(c).(Color))
}

// SetColor sets the pixel at (x, y) and leaves its neighbour in the same byte
// untouched. Points outside the bounds and invalid color codes are ignored.
func (p *Image) SetColor(x, y int, c Color) {
	if !c.Valid() || !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | (byte(c) << shift)
}

// Fill sets every pixel to c. An invalid color code is ignored.
func (p *Image) Fill(c Color) {
	if !c.Valid() {
		return
	}
	v := byte(c)<<4 | byte(c)
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// CopyFrom loads row-major colors, two per byte.
// colors must hold exactly one valid Color per pixel; otherwise an error
// (ErrInvalidSize for a length mismatch) is returned and the image is left
// unchanged.
func (p *Image) CopyFrom(colors []Color) error {
	if len(colors) != 2*len(p.Pix) {
		return ErrInvalidSize
	}
	for i, c := range colors {
		if !c.Valid() {
			return fmt.Errorf("image7color: invalid color code %d at index %d", uint8(c), i)
		}
	}
	for i := range p.Pix {
		p.Pix[i] = byte(colors[2*i])<<4 | byte(colors[2*i+1])
	}
	return nil
}

// LoadPacked copies already packed pixel data into the image.
// Every nibble must be a valid Color code.
func (p *Image) LoadPacked(pix []byte) error {
	if len(pix) != len(p.Pix) {
		return ErrInvalidSize
	}
	for i, b := range pix {
		if !Color(b>>4).Valid() || !Color(b&0x0F).Valid() {
			return fmt.Errorf("image7color: invalid color code in byte %d (0x%02X)", i, b)
		}
	}
	copy(p.Pix, pix)
	return nil
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// Even x uses the high nibble (shift 4), odd x the low nibble (shift 0).
func (p *Image) pixOffset(x, y int) (offset int, shift uint) {
	offset = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/2
	shift = uint(4 * (1 - (x & 1)))
	return
}

// Quantize returns a draw.Image that writes into dst, mapping every color
// to its nearest entry in pal. Use it with draw.Draw to render arbitrary
// images.
func Quantize(dst *Image, pal *Palette) draw.Image {
	return &quantized{Image: dst, pal: pal}
}

type quantized struct {
	*Image
	pal *Palette
}

func (q *quantized) ColorModel() color.Model {
	return q.pal
}

func (q *quantized) Set(x, y int, c color.Color) {
	q.SetColor(x, y, q.pal.Convert(c).(Color))
}
