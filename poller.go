package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"i4.energy/across/sw42dagw/proto"
	"i4.energy/across/sw42dagw/status"
)

// Device is the part of device.Client the daemon uses.
type Device interface {
	Send(ctx context.Context, cmd string) (proto.Response, error)
	Status(ctx context.Context) (*status.Snapshot, error)
}

// Poller keeps the latest STATUS snapshot of one matrix. Every exchange with
// the device goes through the poller so that at most one command is
// outstanding at a time.
type Poller struct {
	Device   Device
	Interval time.Duration
	Logger   *slog.Logger
	// OnUpdate is called with every freshly parsed snapshot.
	OnUpdate func(*status.Snapshot)

	exchange sync.Mutex

	mu       sync.RWMutex
	snapshot *status.Snapshot
	updated  time.Time
	lastErr  error
}

// Run refreshes the snapshot right away and then every Interval until ctx is
// done. Failed refreshes are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if _, err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
			p.Logger.Warn("Failed to refresh status", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Refresh queries STATUS now. On failure the previous snapshot is kept.
func (p *Poller) Refresh(ctx context.Context) (*status.Snapshot, error) {
	p.exchange.Lock()
	snapshot, err := p.Device.Status(ctx)
	p.exchange.Unlock()

	p.mu.Lock()
	p.lastErr = err
	if err == nil {
		p.snapshot = snapshot
		p.updated = time.Now()
	}
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}

	p.Logger.Debug("Status refreshed")
	if p.OnUpdate != nil {
		p.OnUpdate(snapshot)
	}
	return snapshot, nil
}

// Send sends a command and refreshes the snapshot so that readers see its
// effect. A failed refresh is logged, the command itself still succeeded.
func (p *Poller) Send(ctx context.Context, cmd string) (proto.Response, error) {
	p.exchange.Lock()
	resp, err := p.Device.Send(ctx, cmd)
	p.exchange.Unlock()
	if err != nil {
		return nil, err
	}

	p.Logger.Debug("Command sent", "command", cmd)
	if _, err := p.Refresh(ctx); err != nil {
		p.Logger.Warn("Failed to refresh status after command", "command", cmd, "error", err)
	}
	return resp, nil
}

// Snapshot returns the cached snapshot, when it was taken and the error of
// the latest refresh. The snapshot is nil until the first refresh succeeds.
func (p *Poller) Snapshot() (*status.Snapshot, time.Time, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.updated, p.lastErr
}
