//go:build !(linux && cgo)

package udev

import (
	"context"
	"log/slog"

	"github.com/allbin/ttymon"
)

// Watcher stands in for the libudev watcher on builds without cgo. Start
// always fails; use the inotify watcher instead.
type Watcher struct{}

// New creates a Watcher that cannot start
func New(_ *slog.Logger) *Watcher {
	return &Watcher{}
}

func (w *Watcher) Start(context.Context) error {
	return ttymon.ErrWatcherUnavailable
}

func (w *Watcher) Enumerate() ([]ttymon.Device, error) {
	return nil, ttymon.ErrWatcherUnavailable
}

func (w *Watcher) Events() <-chan ttymon.Device { return nil }

func (w *Watcher) Err() <-chan error { return nil }

func (w *Watcher) Close() error { return nil }
