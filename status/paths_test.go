package status_test

import (
	"testing"

	"i4.energy/across/sw42dagw/status"
)

func TestPathLookup(t *testing.T) {
	s := status.Parse(loadReport(t, "testdata/status.txt"))

	tests := []struct {
		path     status.Path
		expected status.Value
	}{
		{path: status.PathPower, expected: status.Str("On")},
		{path: status.PathMac, expected: status.Str("00:11:22:33:44:55")},
		{path: status.PathLocalName, expected: status.Str("SW42DA-LOUNGE")},
		{path: status.PathFirmware, expected: status.Str("V1.22")},
		{path: status.PathSource, expected: status.Int(1)},
		{path: status.PathIP, expected: status.Str("192.168.0.100")},
		{path: status.PathDHCP, expected: status.Str("Off")},
		{path: status.VolumePath(0), expected: status.Int(45)},
		{path: status.VolumePath(4), expected: status.Int(40)},
		{path: status.MutePath(2), expected: status.Str("On")},
		{path: status.CellPath(status.TableInput, 2, "EDID"), expected: status.Str("COPY_OUT01")},
	}

	for _, tt := range tests {
		t.Run(tt.path.String(), func(t *testing.T) {
			got, ok := tt.path.Lookup(s)
			if !ok {
				t.Fatalf("%s not found", tt.path)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	for _, missing := range []status.Path{
		status.VolumePath(5),
		status.CellPath(status.TableAudioOut, 0, "Gain"),
		status.FieldPath("Nope"),
		status.NetworkPath("DNS"),
	} {
		if v, ok := missing.Lookup(s); ok {
			t.Errorf("%s: expected absence, got %v", missing, v)
		}
	}

	if _, ok := status.PathPower.Lookup(nil); ok {
		t.Error("nil snapshot must resolve nothing")
	}
}

func TestTemperature(t *testing.T) {
	s := status.Parse(loadReport(t, "testdata/status.txt"))

	temp, ok := status.Temperature(s)
	if !ok || temp != 73.0 {
		t.Errorf("expected 73.0, got %v (%v)", temp, ok)
	}

	if _, ok := status.Temperature(status.Parse(nil)); ok {
		t.Error("expected no temperature for an empty report")
	}

	if _, ok := status.Celsius(s, status.PathMac); ok {
		t.Error("expected a MAC address not to parse as a temperature")
	}
}

func TestOn(t *testing.T) {
	s := status.Parse(loadReport(t, "testdata/status.txt"))

	if on, ok := status.On(s, status.MutePath(2)); !ok || !on {
		t.Errorf("expected downmix line muted, got %v (%v)", on, ok)
	}
	if on, ok := status.On(s, status.FieldPath(status.FieldBeep)); !ok || on {
		t.Errorf("expected beep off, got %v (%v)", on, ok)
	}
	if _, ok := status.On(s, status.FieldPath("Nope")); ok {
		t.Error("expected absence")
	}
}
