package status

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Field names a scalar of the status report. The value is the label the
// device prints.
type Field string

const (
	FieldFWVersion    Field = "FW Version"
	FieldPower        Field = "Power"
	FieldIR           Field = "IR"
	FieldIRMode       Field = "IR_Mode"
	FieldKey          Field = "Key"
	FieldBeep         Field = "Beep"
	FieldLCD          Field = "LCD"
	FieldLCDPauseTime Field = "LCD_PauseTime(S)"
	FieldPWLEDFollow  Field = "PWLED_Follow"
	FieldNetwork      Field = "Network"
	FieldBaud         Field = "Baud"
	FieldTemp         Field = "Temp(C)"
	FieldUptime       Field = "Uptime(Day:Hour:Min:Sec)"
	FieldARCMode      Field = "ARC_Mode"
	FieldOpticalSel   Field = "OpticalSel"
	FieldOpticalEn    Field = "OpticalEn"
	FieldOutMode      Field = "OutMode"
	FieldAudio        Field = "Audio"
	FieldCECControl   Field = "CEC_Control"
	FieldCECControlBy Field = "CEC_ControlBy"
	FieldCECSteps     Field = "CEC_Steps"
	FieldMultiChannel Field = "MultiChannelOutFrom"
	FieldTwoChannel   Field = "2ChannelOutFrom"
	FieldDRC          Field = "DRC"
	FieldSurround     Field = "SurroundDecoder(Upmixer)"
	FieldVirtualizer  Field = "SpeakerVirtualizer"
	FieldTelnet       Field = "Telnet"
	FieldTCPPort      Field = "TCP/IP Port"
	FieldMac          Field = "Mac"
	FieldLocal        Field = "Local"
)

// ScalarFields are the header/value scalars in report order. FieldFWVersion
// is printed on its own line and is not part of the list.
var ScalarFields = []Field{
	FieldPower,
	FieldIR,
	FieldIRMode,
	FieldKey,
	FieldBeep,
	FieldLCD,
	FieldLCDPauseTime,
	FieldPWLEDFollow,
	FieldNetwork,
	FieldBaud,
	FieldTemp,
	FieldUptime,
	FieldARCMode,
	FieldOpticalSel,
	FieldOpticalEn,
	FieldOutMode,
	FieldAudio,
	FieldCECControl,
	FieldCECControlBy,
	FieldCECSteps,
	FieldMultiChannel,
	FieldTwoChannel,
	FieldDRC,
	FieldSurround,
	FieldVirtualizer,
	FieldTelnet,
	FieldTCPPort,
	FieldMac,
	FieldLocal,
}

// TableName names a repeating table of the report. It is independent of the
// header text, "Line Output" is stored as LineOutput.
type TableName string

const (
	TableInput       TableName = "Input"
	TableOutput      TableName = "Output"
	TableAudioOut    TableName = "AudioOut"
	TableLineOutput  TableName = "LineOutput"
	TableDanteOutput TableName = "DanteOutput"
)

// Tables lists the tables in report order with the header each starts with.
var Tables = []struct {
	Name   TableName
	Header string
}{
	{TableInput, "Input"},
	{TableOutput, "Output"},
	{TableAudioOut, "AudioOut"},
	{TableLineOutput, "Line Output"},
	{TableDanteOutput, "Dante Output"},
}

// NetworkKey is both the header of the network table and the column that
// tells which of its rows is live.
const NetworkKey = "DHCP"

// Snapshot is the structured STATUS report. Sections missing from the
// report are missing here; callers must treat everything as optional.
type Snapshot struct {
	Scalars map[Field]Value
	Tables  map[TableName][]Row
	// Network is the live network configuration, nil when the report has
	// no usable DHCP table.
	Network Row
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Scalars: make(map[Field]Value),
		Tables:  make(map[TableName][]Row),
	}
}

// Scalar returns a scalar field.
func (s *Snapshot) Scalar(f Field) (Value, bool) {
	v, ok := s.Scalars[f]
	return v, ok
}

// Table returns the rows of a table.
func (s *Snapshot) Table(t TableName) ([]Row, bool) {
	rows, ok := s.Tables[t]
	return rows, ok
}

// Cell returns one column of one table row.
func (s *Snapshot) Cell(t TableName, row int, column string) (Value, bool) {
	rows := s.Tables[t]
	if row < 0 || row >= len(rows) {
		return Value{}, false
	}
	return rows[row].Get(column)
}

type member struct {
	key   string
	value any
}

// members flattens the snapshot into the key layout consumers index by:
// scalars keyed by device label, tables by name and the resolved network
// record under "Network". The record takes the key over the Network mode
// scalar, which stays reachable through Scalar.
func (s *Snapshot) members() []member {
	var out []member
	if v, ok := s.Scalars[FieldFWVersion]; ok {
		out = append(out, member{string(FieldFWVersion), v})
	}
	for _, f := range ScalarFields {
		if f == FieldNetwork && s.Network != nil {
			continue
		}
		if v, ok := s.Scalars[f]; ok {
			out = append(out, member{string(f), v})
		}
	}
	for _, t := range Tables {
		if rows, ok := s.Tables[t.Name]; ok {
			if rows == nil {
				rows = []Row{}
			}
			out = append(out, member{string(t.Name), rows})
		}
	}
	if s.Network != nil {
		out = append(out, member{string(FieldNetwork), s.Network})
	}
	return out
}

// MarshalJSON writes the snapshot keyed exactly as the device labels its
// sections, in report order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range s.members() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, m.key, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Snapshot) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range s.members() {
		if err := appendMember(node, m.key, m.value); err != nil {
			return nil, err
		}
	}
	return node, nil
}
