package uc8159

import (
	"errors"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// Serial transmits bytes to the controller. conn.Conn and spi.Conn satisfy it.
type Serial interface {
	Tx(w, r []byte) error
}

// OutputPin drives a control line. gpio.PinOut satisfies it.
type OutputPin interface {
	Out(l gpio.Level) error
}

// InputPin samples a status line.
//
// Unlike gpio.PinIn, reading may fail; wrap a periph pin with BusyPin.
type InputPin interface {
	Sense() (gpio.Level, error)
}

// Delayer blocks for at least d.
type Delayer interface {
	Delay(d time.Duration)
}

// Bus groups the lines the panel is wired through.
type Bus struct {
	Serial Serial    // SPI data, MOSI + SCLK (+ CS)
	Reset  OutputPin // RST, active low
	Busy   InputPin  // BUSY, low while the controller works
	DC     OutputPin // data/command select, low = command
	Delay  Delayer   // nil uses SleepDelayer
}

func (b *Bus) validate() error {
	switch {
	case b.Serial == nil:
		return errors.New("uc8159: serial bus is nil")
	case b.Reset == nil:
		return errors.New("uc8159: reset pin is nil")
	case b.Busy == nil:
		return errors.New("uc8159: busy pin is nil")
	case b.DC == nil:
		return errors.New("uc8159: dc pin is nil")
	}
	return nil
}

// BusyPin adapts a periph input pin. The returned InputPin never fails.
func BusyPin(p gpio.PinIn) InputPin {
	return pinIn{p}
}

type pinIn struct {
	gpio.PinIn
}

func (p pinIn) Sense() (gpio.Level, error) {
	return p.Read(), nil
}

// SleepDelayer implements Delayer with time.Sleep.
type SleepDelayer struct{}

// Delay implements Delayer.
func (SleepDelayer) Delay(d time.Duration) {
	time.Sleep(d)
}

// chunkSize returns the largest write the bus accepts, capped at maxChunk.
func chunkSize(s Serial) int {
	if l, ok := s.(conn.Limits); ok {
		if n := l.MaxTxSize(); n > 0 && n < maxChunk {
			return n
		}
	}
	return maxChunk
}
