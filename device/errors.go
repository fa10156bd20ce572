package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDialer is returned when a Client is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// reach the device for every command.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNoResponse is returned when the idle timeout elapses before the
	// device sent a single byte.
	ErrNoResponse = errors.New("no response from device")

	// ErrLineTooLong is returned when a response line exceeds the maximum
	// allowed length.
	//
	// This typically indicates a wrong baud rate on the bridge, unexpected
	// binary data or a framing error.
	ErrLineTooLong = errors.New("response line too long")

	// ErrNoTransport is returned when a Dialer reports success but hands
	// back no Transport.
	ErrNoTransport = errors.New("dialer returned no transport")

	// ErrEmptyCommand is returned when asked to send a blank command.
	ErrEmptyCommand = errors.New("empty command")
)

// TransportError reports a failed exchange with the device. Op is one of
// "dial", "write" or "read". Transport errors are never retried by the
// client; the poller decides what to do on the next tick.
type TransportError struct {
	Op   string
	Addr string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("sw42da: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sw42da: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
