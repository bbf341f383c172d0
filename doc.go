// Package uc8159 controls a 7-color e-paper display driven by a UC8159
// controller via SPI.
//
// The UC8159 drives 600×448 ACeP panels such as the Pimoroni Inky Impression
// 5.7". Each pixel is one of seven inks, plus a "clean" value used to wipe
// the panel.
//
// # Display Characteristics
//
// - 7 colors: black, white, green, blue, red, yellow, orange
// - 600×448 pixels, packed two pixels per byte (134400 bytes per frame)
// - Full refresh only; a refresh takes tens of seconds
// - Configurable border color
// - The image stays visible with the panel powered off
//
// # Hardware Connection
//
// Connect the panel to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → SPI Clock (SCLK)
//	DIN         → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (GPIO22 on the Inky Impression)
//	RST         → GPIO (GPIO27 on the Inky Impression)
//	BUSY        → GPIO (GPIO17 on the Inky Impression)
//
// BUSY is driven low by the controller while it works and is read with a
// pull-up.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		"image/draw"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/uc8159"
//		"periph.io/x/devices/v3/uc8159/image7color"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		port, _ := spireg.Open("")
//		dev, _ := uc8159.NewSPI(port,
//			gpioreg.ByName("GPIO22"), // DC
//			gpioreg.ByName("GPIO27"), // RST
//			gpioreg.ByName("GPIO17"), // BUSY
//			&uc8159.Config{BorderColor: image7color.White},
//		)
//
//		dev.Fill(image7color.White)
//		dev.SetPixel(10, 10, image7color.Red)
//
//		// Draw any image, matched against the measured panel colors.
//		pal := image7color.NewPalette(1.0)
//		draw.Draw(image7color.Quantize(dev.Image(), pal), dev.Bounds(), photo, image.Point{}, draw.Src)
//
//		dev.Show()
//	}
//
// Nothing is sent to the panel until Show is called. Fill, SetPixel, CopyFrom
// and Write only change the frame memory held by Dev.
//
// # Refresh Sequence
//
// Show performs the whole sequence and blocks until the panel is powered off:
//
//  1. Pulse RST low for 100ms, wait 100ms, wait for BUSY.
//  2. Send the panel configuration (resolution, panel setting, power, PLL,
//     temperature sensor, VCOM and border, TCON, power saving).
//  3. Send the frame with DTM1, wait for BUSY.
//  4. Power on, refresh, power off; waiting for BUSY after each.
//
// Data longer than 4096 bytes is split into several transfers, the default
// buffer size of spidev. Failures are returned as *Error, which records the
// step of the sequence and the command that was being sent.
//
// # Palette
//
// The controller knows nothing about RGB. image7color.Palette maps RGB values
// to the nearest ink; its saturation picks between textbook colors (0) and
// colors measured on a real panel (1).
//
// # Compatibility with periph.io
//
// Dev implements display.Drawer from periph.io/x/conn/v3/display. Draw
// renders an image through the configured palette and refreshes the panel;
// Halt powers it off:
//
//	dev.Draw(dev.Bounds(), photo, image.Point{})
//	dev.Halt()
//
// # TinyGo Drawing
//
// Displayer adapts Dev to tinygo.org/x/drivers.Displayer, so tinyfont and
// similar libraries can draw on the panel:
//
//	tinyfont.WriteLine(dev.Displayer(pal), &freemono.Regular12pt7b, 10, 30, "hello", color.RGBA{A: 255})
package uc8159
