package device

import (
	"context"
	"fmt"

	"i4.energy/across/sw42dagw/proto"
)

// Sender delivers one command and returns the response lines. *Client is a
// Sender, as is anything that serializes access to one.
type Sender interface {
	Send(ctx context.Context, cmd string) (proto.Response, error)
}

// Result is the command an action sent and what the device answered.
type Result struct {
	Command  string         `json:"command"`
	Response proto.Response `json:"response"`
}

// Actions renders typed control actions into wire commands and sends them.
// Invalid arguments are rejected before anything is sent.
type Actions struct {
	Sender Sender
}

// SetVolume sets the level of a zone. The level is clamped to 0..100.
func (a Actions) SetVolume(ctx context.Context, zone proto.Zone, level int) (Result, error) {
	cmd, err := proto.SetVolume(zone, level)
	if err != nil {
		return Result{}, err
	}
	return a.Exec(ctx, cmd)
}

// SetMute mutes or unmutes a zone.
func (a Actions) SetMute(ctx context.Context, zone proto.Zone, on bool) (Result, error) {
	cmd, err := proto.MuteCommand(zone, on)
	if err != nil {
		return Result{}, err
	}
	return a.Exec(ctx, cmd.String())
}

// SelectSource routes input 1..4 to the outputs.
func (a Actions) SelectSource(ctx context.Context, input int) (Result, error) {
	cmd, err := proto.SelectSource(input)
	if err != nil {
		return Result{}, err
	}
	return a.Exec(ctx, cmd)
}

// SetPower switches the matrix on or to standby.
func (a Actions) SetPower(ctx context.Context, on bool) (Result, error) {
	return a.Exec(ctx, proto.PowerCommand(on).String())
}

// SetFeature toggles front panel keys, the beeper, the LCD backlight or CEC
// volume control.
func (a Actions) SetFeature(ctx context.Context, f proto.Feature, on bool) (Result, error) {
	cmd, err := proto.FeatureCommand(f, on)
	if err != nil {
		return Result{}, err
	}
	return a.Exec(ctx, cmd.String())
}

// Reboot restarts the device.
func (a Actions) Reboot(ctx context.Context) (Result, error) {
	return a.Exec(ctx, proto.CmdReboot.String())
}

// Exec sends a rendered command. Send errors are prefixed with the command.
func (a Actions) Exec(ctx context.Context, cmd string) (Result, error) {
	resp, err := a.Sender.Send(ctx, cmd)
	if err != nil {
		return Result{Command: cmd}, fmt.Errorf("%s: %w", cmd, err)
	}
	return Result{Command: cmd, Response: resp}, nil
}

// Actions returns the typed actions bound to c.
func (c *Client) Actions() Actions {
	return Actions{Sender: c}
}
