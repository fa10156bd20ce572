package proto_test

import (
	"errors"
	"testing"

	"i4.energy/across/sw42dagw/proto"
)

func TestCommandFill(t *testing.T) {
	got := proto.Command("OUT 21 VOL XX").Fill("45")
	if got != "OUT 21 VOL 45" {
		t.Errorf("expected %q, got %q", "OUT 21 VOL 45", got)
	}
}

func TestSetVolume(t *testing.T) {
	tests := []struct {
		zone     proto.Zone
		level    int
		expected string
	}{
		{proto.ZoneMain, 45, "VOL 45"},
		{proto.ZoneMultichannelLine, 45, "OUT 21 VOL 45"},
		{proto.ZoneDownmixLine, 0, "OUT 22 VOL 0"},
		{proto.ZoneMultichannelDante, 100, "OUT 23 VOL 100"},
		{proto.ZoneDownmixDante, 150, "OUT 24 VOL 100"},
		{proto.ZoneMain, -3, "VOL 0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := proto.SetVolume(tt.zone, tt.level)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	if _, err := proto.SetVolume(proto.Zone(7), 10); !errors.Is(err, proto.ErrUnknownZone) {
		t.Errorf("expected ErrUnknownZone, got: %v", err)
	}
}

func TestMuteCommand(t *testing.T) {
	tests := []struct {
		zone     proto.Zone
		on       bool
		expected proto.Command
	}{
		{proto.ZoneMain, true, "MUTE ON"},
		{proto.ZoneMain, false, "MUTE OFF"},
		{proto.ZoneMultichannelLine, true, "OUT 21 MUTE ON"},
		{proto.ZoneDownmixDante, false, "OUT 24 MUTE OFF"},
	}

	for _, tt := range tests {
		got, err := proto.MuteCommand(tt.zone, tt.on)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestSelectSource(t *testing.T) {
	for input, expected := range map[int]string{1: "OUT FR 01", 2: "OUT FR 02", 3: "OUT FR 03", 4: "OUT FR 04"} {
		got, err := proto.SelectSource(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != expected {
			t.Errorf("input %d: expected %q, got %q", input, expected, got)
		}
	}

	for _, input := range []int{0, 5} {
		if _, err := proto.SelectSource(input); !errors.Is(err, proto.ErrInputRange) {
			t.Errorf("input %d: expected ErrInputRange, got: %v", input, err)
		}
	}
}

func TestFeatureCommand(t *testing.T) {
	got, err := proto.FeatureCommand(proto.FeatureCEC, true)
	if err != nil || got != "CEC ON" {
		t.Errorf("expected CEC ON, got %q (%v)", got, err)
	}

	f, err := proto.ParseFeature("beep")
	if err != nil || f != proto.FeatureBeep {
		t.Errorf("expected BEEP, got %q (%v)", f, err)
	}

	if _, err := proto.FeatureCommand("HDMI", true); !errors.Is(err, proto.ErrUnknownFeature) {
		t.Errorf("expected ErrUnknownFeature, got: %v", err)
	}
}

func TestPowerCommand(t *testing.T) {
	if proto.PowerCommand(true) != "PON" || proto.PowerCommand(false) != "POFF" {
		t.Errorf("unexpected power commands: %q %q", proto.PowerCommand(true), proto.PowerCommand(false))
	}
}

func TestParseZone(t *testing.T) {
	z, err := proto.ParseZone("downmix_line")
	if err != nil || z != proto.ZoneDownmixLine {
		t.Errorf("expected downmix_line, got %v (%v)", z, err)
	}
	z, err = proto.ParseZone("3")
	if err != nil || z != proto.ZoneMultichannelDante {
		t.Errorf("expected multichannel_dante, got %v (%v)", z, err)
	}
	if _, err := proto.ParseZone("5"); !errors.Is(err, proto.ErrUnknownZone) {
		t.Errorf("expected ErrUnknownZone, got: %v", err)
	}
}
