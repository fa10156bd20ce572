package device

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"i4.energy/across/sw42dagw/proto"
	"i4.energy/across/sw42dagw/status"
)

// Client sends commands to a SW42DA. Every command is a complete
// dial/write/read/close cycle; no connection outlives a call.
//
// Client holds no connection state, so calls never share a transport.
// Calls to the same device must still be serialized by the caller: the
// device answers one command at a time and overlapping exchanges may see
// each other's output.
type Client struct {
	config Config
	parser status.Parser
	addr   string
}

// New creates a Client with the given configuration.
func New(config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	return &Client{
		config: config,
		parser: status.Parser{Logger: config.Logger},
		addr:   describe(config.Dialer),
	}, nil
}

// Send writes one command and returns the response lines.
//
// Reading stops at a prompt line or when the line stays idle for the
// configured idle timeout. The context bounds dialing and is checked between
// lines, a read in progress is only ended by the idle timeout.
func (c *Client) Send(ctx context.Context, cmd string) (proto.Response, error) {
	if strings.TrimSpace(cmd) == "" {
		return nil, ErrEmptyCommand
	}
	wire := cmd
	if !strings.HasSuffix(wire, proto.LF) {
		wire += proto.LF
	}

	dialCtx := ctx
	if _, ok := ctx.Deadline(); !ok && c.config.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.config.DialTimeout)
		defer cancel()
	}

	transport, err := c.config.Dialer.Dial(dialCtx)
	if err != nil {
		return nil, &TransportError{Op: "dial", Addr: c.addr, Err: err}
	}
	if transport == nil {
		return nil, &TransportError{Op: "dial", Addr: c.addr, Err: ErrNoTransport}
	}
	defer func() {
		if err := transport.Close(); err != nil {
			c.config.Logger.Debug("Failed to close transport", "address", c.addr, "error", err)
		}
	}()

	if err := transport.SetReadTimeout(c.config.IdleTimeout); err != nil {
		return nil, &TransportError{Op: "dial", Addr: c.addr, Err: err}
	}

	c.config.Logger.Debug("Sending command", "address", c.addr, "command", strings.TrimSpace(cmd))
	if _, err := transport.Write([]byte(wire)); err != nil {
		return nil, &TransportError{Op: "write", Addr: c.addr, Err: fmt.Errorf("command %q: %w", strings.TrimSpace(cmd), err)}
	}

	resp, err := c.read(ctx, transport)
	if err != nil {
		return resp, err
	}

	c.config.Logger.Debug("Received response", "address", c.addr, "lines", len(resp))
	return resp, nil
}

// read collects lines until the prompt or an idle read.
func (c *Client) read(ctx context.Context, transport Transport) (proto.Response, error) {
	idle := &idleReader{r: transport}
	scanner := bufio.NewScanner(idle)
	scanner.Buffer(make([]byte, 0, min(4096, c.config.MaxLineLength)), c.config.MaxLineLength)
	scanner.Split(proto.Splitter)

	var resp proto.Response
	for {
		if err := ctx.Err(); err != nil {
			return resp, fmt.Errorf("read response: %w", err)
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		resp = append(resp, line)
		if proto.Classify(line) == proto.TypePrompt {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = ErrLineTooLong
		}
		return resp, &TransportError{Op: "read", Addr: c.addr, Err: err}
	}
	if idle.total == 0 {
		return nil, &TransportError{Op: "read", Addr: c.addr, Err: ErrNoResponse}
	}
	return resp, nil
}

// Status queries the device and parses the report. Sections the report
// lacks are missing from the snapshot; only transport failures are errors.
func (c *Client) Status(ctx context.Context) (*status.Snapshot, error) {
	resp, err := c.Send(ctx, proto.CmdStatus.String())
	if err != nil {
		return nil, fmt.Errorf("query status: %w", err)
	}
	return c.parser.Parse(resp), nil
}

// String describes the device address, e.g. "socket://10.0.0.2:8000?baud=57600".
func (c *Client) String() string {
	return c.addr
}

// idleReader ends the stream at the first read that times out without data
// and counts the bytes that arrived.
type idleReader struct {
	r     io.Reader
	total int
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.total += n
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func describe(d Dialer) string {
	if s, ok := d.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", d)
}
