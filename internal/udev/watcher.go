//go:build linux && cgo

package udev

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allbin/ttymon"
	"github.com/jochenvg/go-udev"
)

// Watcher is a ttymon.Watcher backed by libudev
type Watcher struct {
	u      udev.Udev
	logger *slog.Logger
	events chan ttymon.Device
	cancel context.CancelFunc
}

// Ensure Watcher implements ttymon.Watcher at compile time
var _ ttymon.Watcher = (*Watcher)(nil)

// New creates a Watcher. Nothing is subscribed until Start.
func New(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger: logger,
		events: make(chan ttymon.Device),
	}
}

// Start subscribes to udev events for the tty subsystem
func (w *Watcher) Start(ctx context.Context) error {
	m := w.u.NewMonitorFromNetlink("udev")
	if m == nil {
		return fmt.Errorf("%w: cannot open udev netlink monitor", ttymon.ErrWatcherUnavailable)
	}
	if err := m.FilterAddMatchSubsystem(Subsystem); err != nil {
		return fmt.Errorf("failed to filter udev monitor: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch, err := m.DeviceChan(ctx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start udev monitor: %w", err)
	}
	w.cancel = cancel

	go w.forward(ctx, ch)
	return nil
}

func (w *Watcher) forward(ctx context.Context, ch <-chan *udev.Device) {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			return
		case dev, ok := <-ch:
			if !ok {
				return
			}
			d := describe(dev.Devnode(), dev.Action(), dev.Properties())
			w.logger.Debug("udev event", "path", d.Path, "action", d.Action, "vendor", d.Vendor, "serial", d.Serial)
			select {
			case w.events <- d:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Enumerate lists initialized tty devices that have a device node
func (w *Watcher) Enumerate() ([]ttymon.Device, error) {
	e := w.u.NewEnumerate()
	if err := e.AddMatchSubsystem(Subsystem); err != nil {
		return nil, fmt.Errorf("failed to filter udev enumeration: %w", err)
	}
	if err := e.AddMatchIsInitialized(); err != nil {
		return nil, fmt.Errorf("failed to filter udev enumeration: %w", err)
	}
	devs, err := e.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate udev devices: %w", err)
	}

	var out []ttymon.Device
	for _, dev := range devs {
		if dev.Devnode() == "" {
			continue
		}
		out = append(out, describe(dev.Devnode(), "", dev.Properties()))
	}
	return out, nil
}

// Events delivers hotplug notifications
func (w *Watcher) Events() <-chan ttymon.Device {
	return w.events
}

// Err never delivers; libudev monitor failures end the event stream instead.
func (w *Watcher) Err() <-chan error {
	return nil
}

// Close stops the subscription
func (w *Watcher) Close() error {
	if w.cancel == nil {
		return ttymon.ErrWatcherNotStarted
	}
	w.cancel()
	return nil
}
