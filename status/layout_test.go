package status_test

import (
	"slices"
	"testing"

	"i4.energy/across/sw42dagw/status"
)

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Header line",
			input:    "Power   IR   Baud ",
			expected: []string{"Power", "IR", "Baud"},
		},
		{
			name:     "Single spaces stay inside a column",
			input:    "Line Output             Volume     Mute",
			expected: []string{"Line Output", "Volume", "Mute"},
		},
		{
			name:     "Odd run of spaces",
			input:    "On   Mode 2     57600",
			expected: []string{"On", "Mode 2", "57600"},
		},
		{
			name:     "Leading and trailing padding",
			input:    "    01         01    ",
			expected: []string{"01", "01"},
		},
		{
			name:     "Blank line",
			input:    "      ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := status.SplitColumns(tt.input)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLayoutIndex(t *testing.T) {
	l := status.NewLayout("Output     FromIn     HDMIcon     AudioSignal     Audio")

	if i := l.Index("Audio"); i != 4 {
		t.Errorf("expected Audio at 4, got %d", i)
	}
	if i := l.Index("AudioSignal"); i != 3 {
		t.Errorf("expected AudioSignal at 3, got %d", i)
	}
	if i := l.Index("Audi"); i != -1 {
		t.Errorf("prefix must not match, got %d", i)
	}
	if i := l.Index("FromIn "); i != 1 {
		t.Errorf("expected padded key to match, got %d", i)
	}
}

func TestLayoutRow(t *testing.T) {
	l := status.NewLayout("AudioOut          Volume     Mute")

	row, ok := l.Row("Downmix Line      50         On")
	if !ok {
		t.Fatal("expected row")
	}
	if !slices.Equal(row.Labels(), []string{"AudioOut", "Volume", "Mute"}) {
		t.Errorf("unexpected labels: %q", row.Labels())
	}
	if v, _ := row.Get("Volume"); v != status.Int(50) {
		t.Errorf("expected volume 50, got %v", v)
	}

	if _, ok := l.Row("Downmix Line      50"); ok {
		t.Error("short row must be rejected")
	}
}
