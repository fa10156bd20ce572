package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// SocketDialer connects to a serial-over-IP bridge in front of the SW42DA
// RS-232 port. BaudRate is the rate the bridge is configured for; it is only
// carried along in the address since the bridge owns the serial side.
type SocketDialer struct {
	Host     string
	Port     int
	BaudRate int
	// Timeout bounds connection establishment. Zero means the context
	// deadline only.
	Timeout time.Duration
}

func (d SocketDialer) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// Dial opens a TCP connection to the bridge.
func (d SocketDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("sw42da: context is nil")
	}
	if d.Host == "" || d.Port == 0 {
		return nil, errors.New("sw42da: host and port are required")
	}

	dialer := net.Dialer{Timeout: d.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", d.Address())
	if err != nil {
		return nil, err
	}
	return &socketTransport{conn: conn}, nil
}

func (d SocketDialer) String() string {
	baud := d.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	return fmt.Sprintf("socket://%s?baud=%d", d.Address(), baud)
}

// socketTransport maps read deadlines onto the serial port convention of
// returning 0, nil when the line has been idle for the read timeout.
type socketTransport struct {
	conn        net.Conn
	readTimeout time.Duration
}

func (t *socketTransport) Read(p []byte) (int, error) {
	if t.readTimeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return 0, err
		}
	}
	n, err := t.conn.Read(p)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return n, nil
	}
	return n, err
}

func (t *socketTransport) Write(p []byte) (int, error) {
	return t.conn.Write(p)
}

func (t *socketTransport) Close() error {
	return t.conn.Close()
}

func (t *socketTransport) SetReadTimeout(d time.Duration) error {
	t.readTimeout = d
	return nil
}
