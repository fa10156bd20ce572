package status

import (
	"errors"
	"fmt"
	"strings"

	"i4.energy/across/sw42dagw/proto"
)

var (
	// ErrSectionNotFound is returned when a requested key or table header
	// does not appear in the report.
	//
	// Firmware omits sections depending on the device mode, so callers
	// treat it as absence rather than failure.
	ErrSectionNotFound = errors.New("section not found")

	// ErrMalformedRow is returned when a table row has fewer columns than
	// its header, typically because the read was cut short.
	ErrMalformedRow = errors.New("malformed table row")
)

// SameLine finds a "Key: value" line and returns the value. The key is
// matched at the start of the trimmed line and must be followed by a space.
func SameLine(lines []string, key string) (string, bool) {
	key = strings.TrimSpace(key) + " "
	for _, line := range lines {
		line = strings.TrimSpace(line) + " "
		if strings.HasPrefix(line, key) {
			return strings.TrimSpace(line[len(key):]), true
		}
	}
	return "", false
}

// SingleKey finds the first header line that has key as one of its columns
// and returns the value in the same column of the line directly below it.
// The value line must be adjacent to the header; a blank line or the prompt
// in its place means the key has no value.
//
//	Power   IR   IR_Mode   Key   Beep   LCD   Network   Baud
//	On      On   5v        On    Off    On    Mode 2    57600
func SingleKey(lines []string, key string) (Value, bool) {
	for i, line := range lines {
		pos := NewLayout(line).Index(key)
		if pos < 0 {
			continue
		}
		if i+1 >= len(lines) || proto.Classify(lines[i+1]) != proto.TypeData {
			return Value{}, false
		}
		values := SplitColumns(lines[i+1])
		if pos >= len(values) {
			return Value{}, false
		}
		return CoerceDigits(values[pos]), true
	}
	return Value{}, false
}

// Table finds the table whose header line starts with header and returns its
// rows. Rows run until a blank line, the prompt or the end of the report.
//
//	Line Output             Volume     Mute     Delay(Ms)
//	5.1CH Line L            59         Off      0
//	5.1CH Line R            59         Off      0
//
// The search always starts at the top of the report and the header must
// begin the line, so "Output" does not find the "Line Output" table.
func Table(lines []string, header string) ([]Row, error) {
	start := headerIndex(lines, header)
	if start < 0 {
		return nil, fmt.Errorf("table %q: %w", header, ErrSectionNotFound)
	}

	layout := NewLayout(lines[start])
	var rows []Row
	for n, line := range lines[start+1:] {
		if proto.Classify(line) != proto.TypeData {
			break
		}
		row, ok := layout.Row(line)
		if !ok {
			return nil, fmt.Errorf("table %q row %d: %w", header, n+1, ErrMalformedRow)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func headerIndex(lines []string, header string) int {
	header = strings.TrimSpace(header) + " "
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line)+" ", header) {
			return i
		}
	}
	return -1
}
