package device

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// ScriptTransport is a test helper that plays back canned device output.
// Each queued chunk is returned by one Read; once the queue is empty Read
// behaves like an idle serial line and returns 0, nil.
type ScriptTransport struct {
	mu          sync.Mutex
	chunks      []string
	written     strings.Builder
	respond     func(cmd string) string
	closed      bool
	readTimeout time.Duration
}

// NewScriptTransport creates a transport that will read the given chunks.
func NewScriptTransport(chunks ...string) *ScriptTransport {
	return &ScriptTransport{chunks: chunks}
}

func (t *ScriptTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.written.Write(p)
	if t.respond != nil {
		if out := t.respond(strings.TrimSpace(string(p))); out != "" {
			t.chunks = append(t.chunks, out)
		}
	}
	return len(p), nil
}

func (t *ScriptTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.EOF
	}
	if len(t.chunks) == 0 {
		return 0, nil
	}
	n = copy(p, t.chunks[0])
	if n < len(t.chunks[0]) {
		t.chunks[0] = t.chunks[0][n:]
	} else {
		t.chunks = t.chunks[1:]
	}
	return n, nil
}

func (t *ScriptTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *ScriptTransport) SetReadTimeout(d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readTimeout = d
	return nil
}

// Written returns everything written to the transport.
func (t *ScriptTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written.String()
}

// Closed reports whether Close was called.
func (t *ScriptTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// ScriptDialer is a Dialer for tests that answers every command through
// Respond on a fresh ScriptTransport and records the commands it saw.
type ScriptDialer struct {
	// Respond returns the raw device output for a command, line endings
	// included. An empty string simulates a silent device.
	Respond func(cmd string) string

	mu       sync.Mutex
	commands []string
}

func (d *ScriptDialer) Dial(ctx context.Context) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ScriptTransport{respond: func(cmd string) string {
		d.mu.Lock()
		d.commands = append(d.commands, cmd)
		d.mu.Unlock()
		if d.Respond == nil {
			return ""
		}
		return d.Respond(cmd)
	}}, nil
}

// Commands returns the commands sent so far, in order.
func (d *ScriptDialer) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commands...)
}
