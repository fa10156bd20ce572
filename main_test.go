package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"i4.energy/across/sw42dagw/status"
)

func TestRunSend(t *testing.T) {
	client, dialer := newTestDevice(t)

	var out bytes.Buffer
	if err := runSend(context.Background(), client, "OUT FR 03", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "OUT FR 03\nSW42DA>\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := dialer.Commands(); len(got) != 1 || got[0] != "OUT FR 03" {
		t.Errorf("unexpected commands %q", got)
	}
}

func TestRunDump(t *testing.T) {
	client, _ := newTestDevice(t)

	var out bytes.Buffer
	if err := runDump(context.Background(), client, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "FW Version: V1.22\n") {
		t.Errorf("expected firmware first, got %q", out.String()[:min(40, out.Len())])
	}

	var got map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("dump is not valid YAML: %v", err)
	}
	if got["Baud"] != 57600 {
		t.Errorf("expected baud 57600, got %v", got["Baud"])
	}
	rows, ok := got[string(status.TableAudioOut)].([]any)
	if !ok || len(rows) != 5 {
		t.Fatalf("expected 5 AudioOut rows, got %v", got[string(status.TableAudioOut)])
	}
}

func TestRunDump_DeviceError(t *testing.T) {
	boom := errors.New("no route to host")
	d := &stubDevice{statusErr: boom}

	var out bytes.Buffer
	if err := runDump(context.Background(), d, &out); !errors.Is(err, boom) {
		t.Errorf("expected device error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
