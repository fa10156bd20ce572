package device

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

var ErrUnsupportedScheme = errors.New("unsupported transport scheme")

// ParseURL builds a Dialer from a transport address:
//
//	socket://192.168.67.31:8000?baud=57600
//	serial:///dev/ttyUSB0?baud=57600
//
// baud is optional and defaults to DefaultBaudRate.
func ParseURL(raw string) (Dialer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("sw42da: parse transport url: %w", err)
	}

	baud := DefaultBaudRate
	if b := u.Query().Get("baud"); b != "" {
		baud, err = strconv.Atoi(b)
		if err != nil || baud <= 0 {
			return nil, fmt.Errorf("sw42da: invalid baud rate %q", b)
		}
	}

	switch u.Scheme {
	case "socket":
		port, err := strconv.Atoi(u.Port())
		if err != nil || u.Hostname() == "" {
			return nil, fmt.Errorf("sw42da: socket url needs host:port, got %q", u.Host)
		}
		return SocketDialer{Host: u.Hostname(), Port: port, BaudRate: baud}, nil

	case "serial":
		name := u.Path
		if name == "" {
			name = u.Opaque
		}
		if name == "" {
			return nil, errors.New("sw42da: serial url needs a port name")
		}
		return SerialDialer{PortName: name, BaudRate: baud}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
