// Package uc8159 controls a 7-color e-paper panel driven by a UC8159
// controller, such as the Pimoroni Inky Impression 5.7", via SPI.
//
// See the examples for how to use this package.
package uc8159

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"periph.io/x/devices/v3/uc8159/image7color"
)

// Panel geometry. Only the 600x448 panel is supported.
const (
	Width  = 600
	Height = 448
)

const (
	maxChunk   = 4096 // spidev default buffer size
	resetDelay = 100 * time.Millisecond
	busyPoll   = 10 * time.Millisecond
	spiFreq    = 3 * physic.MegaHertz
)

// Config holds the display-wide settings.
type Config struct {
	// BorderColor is shown on the panel edge during refresh.
	BorderColor image7color.Color

	// Palette maps colors passed to Draw. nil uses the textbook colors of
	// image7color.ColorModel.
	Palette *image7color.Palette
}

// State is the step of the refresh sequence the driver is in.
type State int

// Refresh steps, in order.
const (
	Idle State = iota
	Resetting
	Configuring
	TransferringData
	Refreshing
	PoweringOff
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resetting:
		return "resetting"
	case Configuring:
		return "configuring"
	case TransferringData:
		return "transferring data"
	case Refreshing:
		return "refreshing"
	case PoweringOff:
		return "powering off"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dev is the device handle for the panel.
//
// Dev is not safe for concurrent use. It owns the bus for its lifetime.
type Dev struct {
	bus   Bus
	delay Delayer
	chunk int
	cfg   Config
	pal   *image7color.Palette

	// Frame memory, 2 pixels per byte
	fb *image7color.Image

	state State
	log   zerolog.Logger
}

// New returns a Dev talking to the panel through b.
//
// cfg can be nil to use a White border. No bus I/O happens until Show.
func New(b Bus, cfg *Config) (*Dev, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{BorderColor: image7color.White}
	}
	if !cfg.BorderColor.Valid() {
		return nil, fmt.Errorf("uc8159: invalid border color %d", uint8(cfg.BorderColor))
	}

	d := &Dev{
		bus:   b,
		delay: b.Delay,
		chunk: chunkSize(b.Serial),
		cfg:   *cfg,
		pal:   cfg.Palette,
		fb:    image7color.NewImage(image.Rect(0, 0, Width, Height)),
		log:   zerolog.Nop(),
	}
	if d.delay == nil {
		d.delay = SleepDelayer{}
	}
	if d.pal == nil {
		d.pal = image7color.NewPalette(0)
	}
	return d, nil
}

// NewSPI creates a Dev connected via SPI.
//
// The SPI port is configured for 3MHz, Mode0, 8-bit transfers. dc and reset
// must be outputs; busy is configured as a pulled-up input.
func NewSPI(p spi.Port, dc, reset gpio.PinOut, busy gpio.PinIn, cfg *Config) (*Dev, error) {
	if p == nil || dc == nil || reset == nil || busy == nil {
		return nil, errors.New("uc8159: spi port and pins are required")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("uc8159: failed to pull DC low: %w", err)
	}
	if err := reset.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("uc8159: failed to pull RST high: %w", err)
	}
	if err := busy.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("uc8159: failed to configure BUSY: %w", err)
	}

	c, err := p.Connect(spiFreq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("uc8159: failed to connect SPI: %w", err)
	}

	return New(Bus{Serial: c, Reset: reset, Busy: BusyPin(busy), DC: dc}, cfg)
}

// SetLogger sets the logger used to trace the refresh sequence.
func (d *Dev) SetLogger(l zerolog.Logger) {
	d.log = l
}

// Config returns the settings the device was created with.
func (d *Dev) Config() Config {
	return d.cfg
}

// State returns the current refresh step; Idle outside Show.
func (d *Dev) State() State {
	return d.state
}

// Width returns the panel width in pixels.
func (d *Dev) Width() int {
	return Width
}

// Height returns the panel height in pixels.
func (d *Dev) Height() int {
	return Height
}

// ColorModel returns the palette Draw matches colors against.
func (d *Dev) ColorModel() color.Model {
	return d.pal
}

// Bounds returns the image bounds of the panel.
func (d *Dev) Bounds() image.Rectangle {
	return d.fb.Rect
}

// Image returns the frame memory. Drawing into it changes what the next Show
// displays.
//
// The setters of the returned image only store valid color codes, but Pix is
// exported: bytes written to it directly are sent as is, unchecked. Use Write
// to load raw frame data with validation.
func (d *Dev) Image() *image7color.Image {
	return d.fb
}

// Fill sets every pixel to c. Invalid color codes are ignored.
func (d *Dev) Fill(c image7color.Color) {
	d.fb.Fill(c)
}

// CopyFrom loads a full frame of row-major colors.
// colors must hold exactly Width*Height valid entries; otherwise the frame is
// left unchanged and an error is returned (image7color.ErrInvalidSize for a
// length mismatch).
func (d *Dev) CopyFrom(colors []image7color.Color) error {
	return d.fb.CopyFrom(colors)
}

// SetPixel sets the pixel at (x, y). Coordinates outside the panel and
// invalid color codes are ignored.
func (d *Dev) SetPixel(x, y int, c image7color.Color) {
	d.fb.SetColor(x, y, c)
}

// PixelAt returns the color of the pixel at (x, y).
func (d *Dev) PixelAt(x, y int) image7color.Color {
	return d.fb.ColorAt(x, y)
}

// Write loads raw frame memory in horizontal nibble format. It does no bus
// I/O. The data must be exactly Width*Height/2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.fb.LoadPacked(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw renders src into the frame memory, mapping colors through the
// configured palette, then refreshes the panel with Show.
// dst is clipped to the panel bounds; nothing happens when it is empty.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(d.fb.Rect)
	if dst.Empty() {
		return nil
	}

	// Full frames already in panel colors are loaded without conversion.
	if img, ok := src.(*image7color.Image); ok && dst == d.fb.Rect && sp == img.Rect.Min && img.Rect.Size() == d.fb.Rect.Size() {
		if err := d.fb.LoadPacked(img.Pix); err != nil {
			return err
		}
	} else {
		draw.Draw(image7color.Quantize(d.fb, d.pal), dst, src, sp, draw.Src)
	}
	return d.Show()
}

// Halt powers the panel off. The displayed image stays visible; the next
// Show resets and reconfigures the controller.
func (d *Dev) Halt() error {
	err := d.powerOff()
	d.state = Idle
	return err
}

// Show wakes the panel, transfers the frame and refreshes the display, then
// powers the panel off. It blocks for the whole refresh, which takes tens of
// seconds on real hardware.
//
// Any bus failure aborts the sequence and is returned as an *Error.
func (d *Dev) Show() error {
	start := time.Now()
	err := d.show()
	d.state = Idle
	if err != nil {
		return err
	}
	d.log.Info().Dur("elapsed", time.Since(start)).Msg("uc8159: refresh complete")
	return nil
}

func (d *Dev) show() error {
	if err := d.reset(); err != nil {
		return err
	}
	if err := d.configure(); err != nil {
		return err
	}

	d.state = TransferringData
	if err := d.sendCommand(DTM1, d.fb.Pix); err != nil {
		return err
	}
	if err := d.busyWait(); err != nil {
		return err
	}

	d.state = Refreshing
	if err := d.sendCommand(PON, nil); err != nil {
		return err
	}
	if err := d.busyWait(); err != nil {
		return err
	}
	if err := d.sendCommand(DRF, nil); err != nil {
		return err
	}
	if err := d.busyWait(); err != nil {
		return err
	}

	return d.powerOff()
}

func (d *Dev) powerOff() error {
	d.state = PoweringOff
	if err := d.sendCommand(POF, nil); err != nil {
		return err
	}
	return d.busyWait()
}

// reset pulses RST and waits for the controller to come up.
func (d *Dev) reset() error {
	d.state = Resetting
	if err := d.bus.Reset.Out(gpio.Low); err != nil {
		return &Error{Fault: ResetFault, State: d.state, Err: err}
	}
	d.delay.Delay(resetDelay)
	if err := d.bus.Reset.Out(gpio.High); err != nil {
		return &Error{Fault: ResetFault, State: d.state, Err: err}
	}
	d.delay.Delay(resetDelay)
	return d.busyWait()
}

// configure sends the register setup for the 600x448 panel.
func (d *Dev) configure() error {
	d.state = Configuring

	res := binary.BigEndian.AppendUint16(nil, Width)
	res = binary.BigEndian.AppendUint16(res, Height)

	seq := []struct {
		cmd  Command
		data []byte
	}{
		{TRES, res},
		{PSR, []byte{psrPanel, psr7C}},
		{PWR, []byte{pwrDCDC, pwrVGx20V, pwrVDx7C, pwrVDx7C}},
		{PLL, []byte{pllClock}},
		{TSE, []byte{tseInternal}},
		{CDI, []byte{byte(d.cfg.BorderColor)<<5 | cdiInterval}},
		{TCON, []byte{tconNonOver}},
		{DAM, []byte{damDisable}},
		{PWS, []byte{pws7C}},
		{PFS, []byte{pfs1Frame}},
	}
	for _, s := range seq {
		if err := d.sendCommand(s.cmd, s.data); err != nil {
			return err
		}
	}
	return nil
}

// sendCommand writes the command byte with DC low, then the payload with DC
// high. DC is raised once for the whole payload, which is split in bus sized
// chunks.
func (d *Dev) sendCommand(cmd Command, data []byte) error {
	d.log.Debug().Stringer("cmd", cmd).Int("len", len(data)).Msg("uc8159: command")

	if err := d.bus.DC.Out(gpio.Low); err != nil {
		return &Error{Fault: SelectFault, State: d.state, Command: cmd, Err: err}
	}
	if err := d.bus.Serial.Tx([]byte{byte(cmd)}, nil); err != nil {
		return &Error{Fault: WriteFault, State: d.state, Command: cmd, Err: err}
	}
	if len(data) == 0 {
		return nil
	}

	if err := d.bus.DC.Out(gpio.High); err != nil {
		return &Error{Fault: SelectFault, State: d.state, Command: cmd, Err: err}
	}
	for len(data) > 0 {
		n := min(len(data), d.chunk)
		if err := d.bus.Serial.Tx(data[:n], nil); err != nil {
			return &Error{Fault: WriteFault, State: d.state, Command: cmd, Err: err}
		}
		data = data[n:]
	}
	return nil
}

// busyWait polls BUSY until the controller releases it.
// There is no timeout; a panel that never releases BUSY blocks forever.
func (d *Dev) busyWait() error {
	start := time.Now()
	polls := 0
	for {
		l, err := d.bus.Busy.Sense()
		if err != nil {
			return &Error{Fault: BusyFault, State: d.state, Err: err}
		}
		if l == gpio.High {
			break
		}
		polls++
		d.delay.Delay(busyPoll)
	}
	d.log.Debug().Stringer("state", d.state).Int("polls", polls).Dur("elapsed", time.Since(start)).Msg("uc8159: busy released")
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("uc8159.Dev{%dx%d}", Width, Height)
}

var _ display.Drawer = &Dev{}
