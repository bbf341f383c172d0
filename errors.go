package uc8159

import "fmt"

// Fault identifies which bus operation failed.
type Fault int

const (
	// WriteFault is a failed serial write.
	WriteFault Fault = iota + 1
	// ResetFault is a failure driving the reset line.
	ResetFault
	// BusyFault is a failure reading the busy line.
	BusyFault
	// SelectFault is a failure driving the data/command line.
	SelectFault
)

func (f Fault) String() string {
	switch f {
	case WriteFault:
		return "write"
	case ResetFault:
		return "reset"
	case BusyFault:
		return "busy read"
	case SelectFault:
		return "dc select"
	default:
		return fmt.Sprintf("Fault(%d)", int(f))
	}
}

// Error is returned by Dev.Show when the bus fails.
//
// The panel is left in whatever state it reached; nothing is rolled back.
type Error struct {
	Fault   Fault
	State   State   // step of the refresh that failed
	Command Command // command being framed, for WriteFault and SelectFault
	Err     error   // error from the bus
}

func (e *Error) Error() string {
	if e.Fault == WriteFault || e.Fault == SelectFault {
		return fmt.Sprintf("uc8159: %s failed on %s while %s: %v", e.Fault, e.Command, e.State, e.Err)
	}
	return fmt.Sprintf("uc8159: %s failed while %s: %v", e.Fault, e.State, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
