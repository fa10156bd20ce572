package device

import (
	"context"
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaudRate is the factory setting of the SW42DA RS-232 port.
const DefaultBaudRate = 57600

// SerialDialer opens the SW42DA RS-232 port through a local serial device
// using go.bug.st/serial.
type SerialDialer struct {
	PortName string
	BaudRate int
	// Mode overrides BaudRate when set.
	Mode *serial.Mode
}

// Dial opens the serial port. go.bug.st/serial ports already implement
// Transport: on a read timeout they return 0, nil.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("sw42da: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("sw42da: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = DefaultBaudRate
		}
		mode = &serial.Mode{
			BaudRate: baud,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("sw42da: open %s: %w", d.PortName, err)
	}
	return port, nil
}

func (d SerialDialer) String() string {
	baud := d.BaudRate
	if d.Mode != nil {
		baud = d.Mode.BaudRate
	}
	if baud == 0 {
		baud = DefaultBaudRate
	}
	return fmt.Sprintf("serial://%s?baud=%d", d.PortName, baud)
}
