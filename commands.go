package uc8159

import "fmt"

// Command is a UC8159 instruction code.
type Command byte

// Commands used by the refresh sequence.
const (
	PSR  Command = 0x00 // Panel setting
	PWR  Command = 0x01 // Power setting
	POF  Command = 0x02 // Power off
	PFS  Command = 0x03 // Power off sequence setting
	PON  Command = 0x04 // Power on
	DTM1 Command = 0x10 // Data start transmission
	DRF  Command = 0x12 // Display refresh
	PLL  Command = 0x30 // PLL control
	TSE  Command = 0x41 // Temperature sensor enable
	CDI  Command = 0x50 // VCOM and data interval setting
	TCON Command = 0x60 // TCON setting
	TRES Command = 0x61 // Resolution setting
	DAM  Command = 0x65 // SPI flash control
	PWS  Command = 0xE3 // Power saving
)

var commandNames = map[Command]string{
	PSR: "PSR", PWR: "PWR", POF: "POF", PFS: "PFS", PON: "PON",
	DTM1: "DTM1", DRF: "DRF", PLL: "PLL", TSE: "TSE", CDI: "CDI",
	TCON: "TCON", TRES: "TRES", DAM: "DAM", PWS: "PWS",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

// Register values for the 600x448 panel.
const (
	// Resolution select 0b11 = 600x448, LUT from external flash, gate scan up,
	// source shift right, DC-DC on, no soft reset.
	psrPanel = 0b11101111
	psr7C    = 0x08

	// Source, gate and logic voltage from the internal DC-DC; bits 5:3 are
	// undocumented but required.
	pwrDCDC     = 0x06<<3 | 0x01<<2 | 0x01<<1 | 0x01
	pwrVGx20V   = 0x00
	pwrVDx7C    = 0x23
	pllClock    = 0x3C // 2MHz * 7/4
	tseInternal = 0x00
	cdiInterval = 0x17 // VCOM and data interval 10, border bits 7:5 OR'ed in
	tconNonOver = 0x22 // 12ns source to gate and gate to source
	damDisable  = 0x00
	pws7C       = 0xAA
	pfs1Frame   = 0x00
)
