package status

import (
	"strconv"
	"strings"
)

// Path locates one value of a Snapshot: a scalar field, a table cell or a
// column of the network record. Paths are plain data so catalogs of
// readings can be declared as tables.
type Path struct {
	Field   Field
	Table   TableName
	Row     int
	Column  string
	network bool
}

// FieldPath points at a scalar.
func FieldPath(f Field) Path {
	return Path{Field: f}
}

// CellPath points at a table cell.
func CellPath(t TableName, row int, column string) Path {
	return Path{Table: t, Row: row, Column: column}
}

// NetworkPath points at a column of the resolved network record.
func NetworkPath(column string) Path {
	return Path{Column: column, network: true}
}

// Lookup resolves the path. ok is false when the section is absent.
func (p Path) Lookup(s *Snapshot) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	switch {
	case p.network:
		return s.Network.Get(p.Column)
	case p.Table != "":
		return s.Cell(p.Table, p.Row, p.Column)
	default:
		return s.Scalar(p.Field)
	}
}

func (p Path) String() string {
	switch {
	case p.network:
		return string(FieldNetwork) + "." + p.Column
	case p.Table != "":
		return string(p.Table) + "[" + strconv.Itoa(p.Row) + "]." + p.Column
	default:
		return string(p.Field)
	}
}

// Well known readings. AudioOut rows follow proto.Zones.
var (
	PathPower       = FieldPath(FieldPower)
	PathTemperature = FieldPath(FieldTemp)
	PathMac         = FieldPath(FieldMac)
	PathLocalName   = FieldPath(FieldLocal)
	PathFirmware    = FieldPath(FieldFWVersion)
	PathSource      = CellPath(TableOutput, 0, "FromIn")
	PathIP          = NetworkPath("IP")
	PathDHCP        = NetworkPath(NetworkKey)
)

// VolumePath returns the volume cell of an AudioOut row.
func VolumePath(zone int) Path {
	return CellPath(TableAudioOut, zone, "Volume")
}

// MutePath returns the mute cell of an AudioOut row.
func MutePath(zone int) Path {
	return CellPath(TableAudioOut, zone, "Mute")
}

// Celsius returns the reading at path in degrees Celsius. The device prints
// temperatures with a unit suffix ("73.0C").
func Celsius(s *Snapshot, p Path) (float64, bool) {
	v, ok := p.Lookup(s)
	if !ok {
		return 0, false
	}
	t, err := strconv.ParseFloat(strings.TrimSuffix(v.String(), "C"), 64)
	if err != nil {
		return 0, false
	}
	return t, true
}

// Temperature returns the chassis temperature.
func Temperature(s *Snapshot) (float64, bool) {
	return Celsius(s, PathTemperature)
}

// On reports whether the value at path is the device's "On" flag.
func On(s *Snapshot, p Path) (on, ok bool) {
	v, ok := p.Lookup(s)
	if !ok {
		return false, false
	}
	return v.Is("On"), true
}
