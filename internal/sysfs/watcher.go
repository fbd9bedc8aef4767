package sysfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/allbin/ttymon"
	"github.com/fsnotify/fsnotify"
)

// Watcher is a ttymon.Watcher that sees tty nodes appear and disappear in
// /dev through inotify and reads their attributes from sysfs.
type Watcher struct {
	devDir string
	sysDir string
	settle time.Duration
	logger *slog.Logger

	fs     *fsnotify.Watcher
	events chan ttymon.Device
	errs   chan error
	cancel context.CancelFunc

	// known remembers added devices so remove events, which arrive after
	// sysfs is gone, still carry vendor and serial. Only forward touches it.
	known map[string]ttymon.Device
}

// Ensure Watcher implements ttymon.Watcher at compile time
var _ ttymon.Watcher = (*Watcher)(nil)

// Option configures a Watcher
type Option func(*Watcher)

// WithDirs overrides the /dev and /sys/class/tty locations
func WithDirs(devDir, sysDir string) Option {
	return func(w *Watcher) {
		w.devDir = devDir
		w.sysDir = sysDir
	}
}

// WithSettleDelay sets how long to wait after a node appears before it is
// reported, giving udev time to apply permissions
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New creates a Watcher. Nothing is watched until Start.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		devDir: DefaultDevDir,
		sysDir: DefaultSysDir,
		settle: 250 * time.Millisecond,
		logger: slog.Default(),
		events: make(chan ttymon.Device),
		errs:   make(chan error, 1),
		known:  make(map[string]ttymon.Device),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the device directory
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create inotify watcher: %w", err)
	}
	if err := fw.Add(w.devDir); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.devDir, err)
	}
	w.fs = fw

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.forward(ctx)
	return nil
}

func (w *Watcher) forward(ctx context.Context) {
	defer close(w.events)
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			d, ok := w.translate(ctx, event)
			if !ok {
				continue
			}
			select {
			case w.events <- d:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// onError forwards inotify failures that end the watch. A queue overflow
// only means some events were dropped, so it is logged and watching goes on.
func (w *Watcher) onError(err error) {
	if errors.Is(err, fsnotify.ErrEventOverflow) {
		w.logger.Warn("inotify queue overflowed, events were dropped", "dir", w.devDir)
		return
	}
	w.logger.Error("inotify error", "error", err)
	select {
	case w.errs <- err:
	default:
	}
}

// translate turns an inotify event on a tty node into a device snapshot
func (w *Watcher) translate(ctx context.Context, event fsnotify.Event) (ttymon.Device, bool) {
	name := filepath.Base(event.Name)
	if !strings.HasPrefix(name, "tty") {
		return ttymon.Device{}, false
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		if w.settle > 0 {
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ttymon.Device{}, false
			}
		}
		d := describe(w.devDir, w.sysDir, name, ttymon.ActionAdd)
		w.known[d.Path] = d
		w.logger.Debug("tty added", "path", d.Path, "vendor", d.Vendor, "serial", d.Serial)
		return d, true

	case event.Op.Has(fsnotify.Remove):
		path := filepath.Join(w.devDir, name)
		d, ok := w.known[path]
		if !ok {
			d = ttymon.Device{Path: path}
		}
		delete(w.known, path)
		d.Action = ttymon.ActionRemove
		w.logger.Debug("tty removed", "path", d.Path)
		return d, true
	}
	return ttymon.Device{}, false
}

// Enumerate lists tty devices currently described in sysfs
func (w *Watcher) Enumerate() ([]ttymon.Device, error) {
	devices, err := enumerate(w.devDir, w.sysDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.sysDir, err)
	}
	return devices, nil
}

// Events delivers hotplug notifications
func (w *Watcher) Events() <-chan ttymon.Device {
	return w.events
}

// Err delivers inotify failures
func (w *Watcher) Err() <-chan error {
	return w.errs
}

// Close stops watching
func (w *Watcher) Close() error {
	if w.cancel == nil {
		return ttymon.ErrWatcherNotStarted
	}
	w.cancel()
	return nil
}
