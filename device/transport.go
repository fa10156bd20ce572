package device

import (
	"context"
	"io"
	"time"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=device

// Transport represents an established, bidirectional byte stream to a SW42DA.
//
// A Transport is assumed to be already connected and ready for use. Typical
// implementations are a local serial port, a TCP connection to a
// serial-over-IP bridge, or in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser

	// SetReadTimeout bounds how long Read waits for the first byte. When the
	// timeout elapses Read returns 0, nil: the device has nothing more to
	// say right now.
	SetReadTimeout(t time.Duration) error
}

// Dialer opens a Transport to a SW42DA.
//
// The Client dials once per command and closes the Transport when the
// response is complete, so a Dialer must be reusable.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport. It may
	// perform blocking operations and should respect cancellation and deadlines
	// provided by the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}
