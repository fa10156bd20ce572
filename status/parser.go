package status

import (
	"context"
	"errors"
	"log/slog"
)

// firmwareKey is printed as "FW Version: V1.22" on a line of its own.
const firmwareKey = "FW Version:"

// Parser turns a STATUS report into a Snapshot. The zero value is ready to
// use and logs nothing.
type Parser struct {
	// Logger receives debug records about sections that were dropped.
	Logger *slog.Logger
}

// Parse builds a Snapshot with the zero Parser.
func Parse(lines []string) *Snapshot {
	return Parser{}.Parse(lines)
}

// Parse builds a Snapshot from the report lines. It never fails: missing
// sections are left out and a malformed table only loses that table.
func (p Parser) Parse(lines []string) *Snapshot {
	s := newSnapshot()

	if fw, ok := SameLine(lines, firmwareKey); ok {
		s.Scalars[FieldFWVersion] = Str(fw)
	}

	for _, f := range ScalarFields {
		if v, ok := SingleKey(lines, string(f)); ok {
			s.Scalars[f] = v
		}
	}

	for _, t := range Tables {
		rows, err := Table(lines, t.Header)
		if err != nil {
			p.dropped(string(t.Name), err)
			continue
		}
		s.Tables[t.Name] = rows
	}

	rows, err := Table(lines, NetworkKey)
	if err != nil {
		p.dropped(string(FieldNetwork), err)
		return s
	}
	network, err := ResolveNetwork(rows)
	if err != nil {
		p.dropped(string(FieldNetwork), err)
		return s
	}
	s.Network = network

	return s
}

// ErrNoNetworkRow is returned by ResolveNetwork when the row for the active
// addressing mode is missing.
var ErrNoNetworkRow = errors.New("no row for active network mode")

// ResolveNetwork picks the live row of the DHCP table. The device always
// prints the DHCP configuration first and the static configuration second.
// When DHCP is on the first row is returned as is, otherwise the second row
// with DHCP set to Off, since the static row does not carry a reliable flag.
func ResolveNetwork(rows []Row) (Row, error) {
	if len(rows) > 0 {
		if v, ok := rows[0].Get(NetworkKey); ok && v.String() == "On" {
			return rows[0], nil
		}
	}
	if len(rows) < 2 {
		return nil, ErrNoNetworkRow
	}
	return rows[1].With(NetworkKey, Str("Off")), nil
}

func (p Parser) dropped(section string, err error) {
	if p.Logger == nil {
		return
	}
	level := slog.LevelDebug
	if errors.Is(err, ErrMalformedRow) {
		level = slog.LevelWarn
	}
	p.Logger.Log(context.Background(), level, "Status section dropped", "section", section, "error", err)
}
