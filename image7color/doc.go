// Package image7color provides the color model and frame memory layout of the
// UC8159 7-color e-paper controller.
//
// The panel shows 7 colors (Black, White, Green, Blue, Red, Yellow, Orange)
// plus Clean, a code used to clear it. Pixels are stored in horizontal nibble
// packing where each byte contains 2 pixels.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0      1      2     3
//	Colors: White  Red    Blue  Black
//	Bytes:  0x14          0x30
//
// Panels render colors far less vividly than their RGB names suggest. A
// Palette blends the textbook RGB values with values measured on real panels;
// the saturation parameter picks the mix:
//
//	pal := image7color.NewPalette(0.5)
//	c := pal.ClosestColor(200, 30, 40) // Red
//
// Use Quantize to draw any image.Image through a palette:
//
//	img := image7color.NewImage(image.Rect(0, 0, 600, 448))
//	draw.Draw(image7color.Quantize(img, pal), img.Bounds(), photo, image.Point{}, draw.Src)
package image7color
