package ttymon

import "context"

// Enumerator lists the tty devices attached right now
type Enumerator interface {
	Enumerate() ([]Device, error)
}

// Watcher is a subscription to hotplug notifications for tty devices.
//
// Start must be called before Enumerate, so that a device plugged in between
// the two calls still shows up as an event. Events is the readiness handle:
// a receive on it is a poll for the next notification. Only one goroutine
// may receive from Events at a time.
type Watcher interface {
	Enumerator
	Start(ctx context.Context) error
	Events() <-chan Device
	Err() <-chan error
	Close() error
}

// Poll blocks until the next notification from w. It returns
// ErrWatcherClosed once the event stream ends.
func Poll(ctx context.Context, w Watcher) (Device, error) {
	select {
	case <-ctx.Done():
		return Device{}, ctx.Err()
	case d, ok := <-w.Events():
		if !ok {
			return Device{}, ErrWatcherClosed
		}
		return d, nil
	case err, ok := <-w.Err():
		if !ok {
			return Device{}, ErrWatcherClosed
		}
		return Device{}, err
	}
}

// ListDevices returns the attached devices that match c
func ListDevices(e Enumerator, c Criteria) ([]Device, error) {
	devices, err := e.Enumerate()
	if err != nil {
		return nil, err
	}
	var matched []Device
	for _, d := range devices {
		if c.Matches(d) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}
