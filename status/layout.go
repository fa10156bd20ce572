package status

import "strings"

// columnSep separates columns. Labels and values may contain a single space
// ("Mode 2", "Line Output") but never two in a row.
const columnSep = "  "

// SplitColumns splits a report line into its trimmed, non-empty columns.
func SplitColumns(line string) []string {
	var cols []string
	for _, piece := range strings.Split(line, columnSep) {
		if piece = strings.TrimSpace(piece); piece != "" {
			cols = append(cols, piece)
		}
	}
	return cols
}

// Layout is the ordered column labels of one header line.
type Layout struct {
	Labels []string
}

func NewLayout(header string) Layout {
	return Layout{Labels: SplitColumns(header)}
}

// Index returns the position of the label that equals key as a whole, or -1.
// A key never matches a longer label it is a prefix of, so "Audio" does not
// find "AudioSignal".
func (l Layout) Index(key string) int {
	key = strings.TrimSpace(key) + " "
	for i, label := range l.Labels {
		if label+" " == key {
			return i
		}
	}
	return -1
}

// Row zips a data line with the layout. ok is false when the line has fewer
// columns than the layout. Extra trailing columns are ignored.
func (l Layout) Row(line string) (row Row, ok bool) {
	values := SplitColumns(line)
	if len(values) < len(l.Labels) {
		return nil, false
	}
	row = make(Row, len(l.Labels))
	for i, label := range l.Labels {
		row[i] = Cell{Label: label, Value: Coerce(values[i])}
	}
	return row, true
}
