package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"i4.energy/across/sw42dagw/proto"
	"i4.energy/across/sw42dagw/status"
)

type ControlKind string

const (
	KindSensor       ControlKind = "sensor"
	KindBinarySensor ControlKind = "binary_sensor"
	KindSwitch       ControlKind = "switch"
	KindNumber       ControlKind = "number"
	KindSelect       ControlKind = "select"
	KindButton       ControlKind = "button"
)

// Format tells how the raw value at a control's path is presented.
type Format int

const (
	FormatRaw Format = iota
	// FormatCelsius strips the unit suffix of "73.0C".
	FormatCelsius
	// FormatOnOff reports the device's On/Off flag as a bool.
	FormatOnOff
	// FormatInput maps an input number to its configured name.
	FormatInput
)

var (
	ErrUnknownControl   = errors.New("unknown control")
	ErrReadOnly         = errors.New("control is read only")
	ErrInvalidValue     = errors.New("invalid control value")
	ErrValueUnavailable = errors.New("value not in status report")
)

// Control describes one readable or writable property of the matrix as data.
// Commands are templates from the proto catalog; Set uses the XX placeholder.
type Control struct {
	Key    string
	Name   string
	Kind   ControlKind
	State  status.Path
	Format Format
	Unit   string

	On, Off proto.Command
	Set     proto.Command
	Press   proto.Command

	Min, Max int
	Options  []string
}

// ID is unique across kinds, e.g. "switch.power".
func (c Control) ID() string {
	return string(c.Kind) + "." + c.Key
}

func (c Control) readable() bool {
	return c.Kind != KindButton
}

// Value reads the control's state from a snapshot.
func (c Control) Value(s *status.Snapshot) (any, error) {
	if !c.readable() {
		return nil, ErrValueUnavailable
	}
	v, ok := c.State.Lookup(s)
	if !ok {
		return nil, ErrValueUnavailable
	}

	switch c.Format {
	case FormatCelsius:
		t, ok := status.Celsius(s, c.State)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrValueUnavailable, v.String())
		}
		return t, nil
	case FormatOnOff:
		on, _ := status.On(s, c.State)
		return on, nil
	case FormatInput:
		n, ok := v.Int()
		if !ok || n < proto.MinInput || n-proto.MinInput >= len(c.Options) {
			return nil, fmt.Errorf("%w: input %q", ErrValueUnavailable, v.String())
		}
		return c.Options[n-proto.MinInput], nil
	}

	if n, ok := v.Int(); ok {
		return n, nil
	}
	return v.String(), nil
}

// Command returns the wire command that sets the control to value. Switches
// take a bool, numbers a number, selects an option and buttons nothing.
func (c Control) Command(value any) (string, error) {
	switch c.Kind {
	case KindSwitch:
		on, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("%w: %s wants true or false", ErrInvalidValue, c.ID())
		}
		if on {
			return c.On.String(), nil
		}
		return c.Off.String(), nil

	case KindNumber:
		var n int
		switch v := value.(type) {
		case int:
			n = v
		case float64:
			n = int(v)
		default:
			return "", fmt.Errorf("%w: %s wants a number", ErrInvalidValue, c.ID())
		}
		n = max(c.Min, min(c.Max, n))
		return c.Set.Fill(strconv.Itoa(n)), nil

	case KindSelect:
		option, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("%w: %s wants one of %q", ErrInvalidValue, c.ID(), c.Options)
		}
		for i, o := range c.Options {
			if strings.EqualFold(o, option) {
				return c.Set.Fill(fmt.Sprintf("%02d", i+proto.MinInput)), nil
			}
		}
		return "", fmt.Errorf("%w: %s has no option %q", ErrInvalidValue, c.ID(), option)

	case KindButton:
		return c.Press.String(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrReadOnly, c.ID())
}

var zoneTitles = map[proto.Zone]string{
	proto.ZoneMain:              "Main",
	proto.ZoneMultichannelLine:  "Multichannel Line",
	proto.ZoneDownmixLine:       "Downmix Line",
	proto.ZoneMultichannelDante: "Multichannel Dante",
	proto.ZoneDownmixDante:      "Downmix Dante",
}

var featureControls = []struct {
	key     string
	name    string
	feature proto.Feature
	field   status.Field
}{
	{"key_control", "Key Control", proto.FeatureKey, status.FieldKey},
	{"beep_control", "Onboard Beep", proto.FeatureBeep, status.FieldBeep},
	{"lcd_always_on", "LCD Always On", proto.FeatureLCD, status.FieldLCD},
	{"cec_volume_control", "CEC Volume Control", proto.FeatureCEC, status.FieldCECControl},
}

// Catalog is the set of controls of one matrix, in a stable order.
type Catalog []Control

// NewCatalog lists every control. inputNames label the four inputs.
func NewCatalog(inputNames []string) (Catalog, error) {
	if len(inputNames) != proto.MaxInput {
		return nil, fmt.Errorf("catalog: want %d input names, got %d", proto.MaxInput, len(inputNames))
	}

	c := Catalog{
		{Key: "temperature", Name: "Temperature", Kind: KindSensor, State: status.PathTemperature, Format: FormatCelsius, Unit: "°C"},
		{Key: "mac_address", Name: "MAC Address", Kind: KindSensor, State: status.PathMac},
		{Key: "source_input", Name: "Source Input", Kind: KindSensor, State: status.PathSource},
		{Key: "local_name", Name: "Local Name", Kind: KindSensor, State: status.PathLocalName},
		{Key: "firmware", Name: "Firmware", Kind: KindSensor, State: status.PathFirmware},
		{Key: "ip_address", Name: "IP Address", Kind: KindSensor, State: status.PathIP},
		{Key: "dhcp", Name: "DHCP", Kind: KindBinarySensor, State: status.PathDHCP, Format: FormatOnOff},
	}

	for _, z := range proto.Zones {
		vol, err := proto.VolumeCommand(z)
		if err != nil {
			return nil, err
		}
		muteOn, err := proto.MuteCommand(z, true)
		if err != nil {
			return nil, err
		}
		muteOff, err := proto.MuteCommand(z, false)
		if err != nil {
			return nil, err
		}

		key, title := z.String(), zoneTitles[z]
		c = append(c,
			Control{Key: key + "_volume", Name: title + " Volume", Kind: KindSensor,
				State: status.VolumePath(int(z)), Unit: "%"},
			Control{Key: key + "_volume_mute", Name: title + " Volume Mute", Kind: KindBinarySensor,
				State: status.MutePath(int(z)), Format: FormatOnOff},
			Control{Key: key + "_volume_mute", Name: title + " Volume Mute", Kind: KindSwitch,
				State: status.MutePath(int(z)), Format: FormatOnOff, On: muteOn, Off: muteOff},
			Control{Key: key + "_volume", Name: title + " Volume", Kind: KindNumber,
				State: status.VolumePath(int(z)), Unit: "%", Set: vol, Min: proto.MinVolume, Max: proto.MaxVolume},
		)
	}

	for _, f := range featureControls {
		on, err := proto.FeatureCommand(f.feature, true)
		if err != nil {
			return nil, err
		}
		off, err := proto.FeatureCommand(f.feature, false)
		if err != nil {
			return nil, err
		}
		c = append(c, Control{Key: f.key, Name: f.name, Kind: KindSwitch,
			State: status.FieldPath(f.field), Format: FormatOnOff, On: on, Off: off})
	}

	c = append(c,
		Control{Key: "power", Name: "Power", Kind: KindSwitch, State: status.PathPower, Format: FormatOnOff,
			On: proto.PowerCommand(true), Off: proto.PowerCommand(false)},
		Control{Key: "source_input", Name: "Source Input", Kind: KindSelect, State: status.PathSource, Format: FormatInput,
			Set: proto.CmdSourceSelect, Options: inputNames},
	)

	for i, name := range inputNames {
		input := i + proto.MinInput
		cmd, err := proto.SelectSource(input)
		if err != nil {
			return nil, err
		}
		c = append(c, Control{Key: fmt.Sprintf("input%d", input), Name: name, Kind: KindButton, Press: proto.Command(cmd)})
	}

	return append(c, Control{Key: "reboot", Name: "Reboot", Kind: KindButton, Press: proto.CmdReboot}), nil
}

// Lookup finds a control by ID.
func (c Catalog) Lookup(id string) (Control, error) {
	for _, ctl := range c {
		if ctl.ID() == id {
			return ctl, nil
		}
	}
	return Control{}, fmt.Errorf("%w: %q", ErrUnknownControl, id)
}

// ControlState is the JSON view of a control and its current value.
type ControlState struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Kind    ControlKind `json:"kind"`
	Unit    string      `json:"unit,omitempty"`
	Value   any         `json:"value,omitempty"`
	Min     *int        `json:"min,omitempty"`
	Max     *int        `json:"max,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// States reads every control from s. Controls whose value is missing from
// the report are listed without a value.
func (c Catalog) States(s *status.Snapshot) []ControlState {
	states := make([]ControlState, 0, len(c))
	for _, ctl := range c {
		st := ControlState{ID: ctl.ID(), Name: ctl.Name, Kind: ctl.Kind, Unit: ctl.Unit, Options: ctl.Options}
		if v, err := ctl.Value(s); err == nil {
			st.Value = v
		}
		if ctl.Kind == KindNumber {
			st.Min, st.Max = &ctl.Min, &ctl.Max
		}
		states = append(states, st)
	}
	return states
}
