// Package driver runs reconciliation passes against live bridges. The core in
// pkg/bridge is a library with no retry or scheduling policy of its own; the
// driver supplies both, and serializes passes so that only one runs per
// device at a time.
package driver

import (
	"context"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Source supplies desired bridge configurations and change notifications.
type Source interface {
	// Get returns the desired config for one bridge, or util.ErrNotFound.
	Get(ctx context.Context, name string) (*bridge.Config, error)
	// Watch returns a channel of bridge names whose desired config changed.
	// The channel closes when the source shuts down.
	Watch(ctx context.Context) (<-chan string, error)
	Close() error
}

// Driver drives reconciliation for a set of bridges from one Source. All
// passes run on the caller's goroutine, one at a time, which satisfies the
// core's single-writer requirement.
type Driver struct {
	source    Source
	engine    *bridge.Engine
	newDevice func(name string) *bridge.Device

	// devices caches one Device per bridge so the admin-state hold counter
	// survives across passes.
	devices map[string]*bridge.Device
}

// New creates a driver. newDevice binds a Device to its collaborators; the
// driver calls it once per bridge name.
func New(source Source, engine *bridge.Engine, newDevice func(name string) *bridge.Device) *Driver {
	return &Driver{
		source:    source,
		engine:    engine,
		newDevice: newDevice,
		devices:   make(map[string]*bridge.Device),
	}
}

func (d *Driver) device(name string) *bridge.Device {
	dev, ok := d.devices[name]
	if !ok {
		dev = d.newDevice(name)
		d.devices[name] = dev
	}
	return dev
}

// Reconcile fetches the desired config for one bridge and applies it.
func (d *Driver) Reconcile(ctx context.Context, name string) error {
	cfg, err := d.source.Get(ctx, name)
	if err != nil {
		return err
	}
	return d.engine.Apply(d.device(name), cfg)
}

// Run processes change notifications until ctx is cancelled or the source's
// watch channel closes. A failed pass is logged and left for the next
// notification; a retried write is only meaningful once the triggering
// condition clears.
func (d *Driver) Run(ctx context.Context) error {
	ch, err := d.source.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case name, ok := <-ch:
			if !ok {
				return nil
			}
			if err := d.Reconcile(ctx, name); err != nil {
				util.WithBridge(name).Errorf("reconcile failed: %v", err)
			}
		}
	}
}
