package proto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is a literal device command, possibly containing Placeholder.
type Command string

const (
	CmdStatus   Command = "STATUS"
	CmdReboot   Command = "REBOOT"
	CmdPowerOn  Command = "PON"
	CmdPowerOff Command = "POFF"

	// CmdSourceSelect routes an input to the outputs. XX is the two digit
	// input number.
	CmdSourceSelect Command = "OUT FR XX"
)

// Fill substitutes every Placeholder in the command with value.
func (c Command) Fill(value string) string {
	return strings.ReplaceAll(string(c), Placeholder, value)
}

func (c Command) String() string {
	return string(c)
}

// Zone identifies one of the audio outputs. Its value is the row index of the
// output in the AudioOut status table.
type Zone int

const (
	ZoneMain Zone = iota
	ZoneMultichannelLine
	ZoneDownmixLine
	ZoneMultichannelDante
	ZoneDownmixDante
)

// Zones lists every zone in AudioOut row order.
var Zones = []Zone{
	ZoneMain,
	ZoneMultichannelLine,
	ZoneDownmixLine,
	ZoneMultichannelDante,
	ZoneDownmixDante,
}

var zoneNames = [...]string{
	"main",
	"multichannel_line",
	"downmix_line",
	"multichannel_dante",
	"downmix_dante",
}

// zonePrefix is prepended to the volume and mute commands. The main zone
// has no OUT selector.
var zonePrefix = [...]string{"", "OUT 21 ", "OUT 22 ", "OUT 23 ", "OUT 24 "}

func (z Zone) Valid() bool {
	return z >= ZoneMain && z <= ZoneDownmixDante
}

func (z Zone) String() string {
	if !z.Valid() {
		return "zone(" + strconv.Itoa(int(z)) + ")"
	}
	return zoneNames[z]
}

// ParseZone accepts either the zone name or its numeric index.
func ParseZone(s string) (Zone, error) {
	for i, name := range zoneNames {
		if s == name {
			return Zone(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Zone(n).Valid() {
		return Zone(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownZone, s)
}

// VolumeCommand returns the volume template for the zone.
func VolumeCommand(z Zone) (Command, error) {
	if !z.Valid() {
		return "", ErrUnknownZone
	}
	return Command(zonePrefix[z] + "VOL " + Placeholder), nil
}

// MuteCommand returns the mute on or off command for the zone.
func MuteCommand(z Zone, on bool) (Command, error) {
	if !z.Valid() {
		return "", ErrUnknownZone
	}
	return Command(zonePrefix[z] + "MUTE " + onOff(on)), nil
}

// Feature is a device setting that is switched with "<FEATURE> ON|OFF".
type Feature string

const (
	FeatureKey  Feature = "KEY"
	FeatureBeep Feature = "BEEP"
	FeatureLCD  Feature = "LCD"
	FeatureCEC  Feature = "CEC"
)

var Features = []Feature{FeatureKey, FeatureBeep, FeatureLCD, FeatureCEC}

func ParseFeature(s string) (Feature, error) {
	f := Feature(strings.ToUpper(s))
	for _, known := range Features {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
}

// FeatureCommand returns the toggle command for the feature.
func FeatureCommand(f Feature, on bool) (Command, error) {
	if _, err := ParseFeature(string(f)); err != nil {
		return "", err
	}
	return Command(string(f) + " " + onOff(on)), nil
}

// PowerCommand returns PON or POFF.
func PowerCommand(on bool) Command {
	if on {
		return CmdPowerOn
	}
	return CmdPowerOff
}

const (
	MinInput = 1
	MaxInput = 4

	MinVolume = 0
	MaxVolume = 100
)

var (
	ErrUnknownZone    = errors.New("unknown zone")
	ErrUnknownFeature = errors.New("unknown feature")
	ErrInputRange     = errors.New("input out of range")
)

// SetVolume renders the volume command for the zone. The level is clamped
// to MinVolume..MaxVolume.
func SetVolume(z Zone, level int) (string, error) {
	cmd, err := VolumeCommand(z)
	if err != nil {
		return "", err
	}
	level = max(MinVolume, min(MaxVolume, level))
	return cmd.Fill(strconv.Itoa(level)), nil
}

// SelectSource renders the routing command for input 1..4.
func SelectSource(input int) (string, error) {
	if input < MinInput || input > MaxInput {
		return "", fmt.Errorf("%w: %d", ErrInputRange, input)
	}
	return CmdSourceSelect.Fill(fmt.Sprintf("%02d", input)), nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
