package ttymon

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeWatcher is a Watcher driven by the test through its events channel
type fakeWatcher struct {
	present []Device
	events  chan Device
	errs    chan error
	started bool
	closed  chan struct{}
	once    sync.Once
}

func newFakeWatcher(present ...Device) *fakeWatcher {
	return &fakeWatcher{
		present: present,
		events:  make(chan Device),
		errs:    make(chan error, 1),
		closed:  make(chan struct{}),
	}
}

func (w *fakeWatcher) Start(context.Context) error {
	w.started = true
	return nil
}

// Enumerate refuses to run before Start, which is the ordering the
// controller must respect.
func (w *fakeWatcher) Enumerate() ([]Device, error) {
	if !w.started {
		return nil, ErrWatcherNotStarted
	}
	return w.present, nil
}

func (w *fakeWatcher) Events() <-chan Device { return w.events }

func (w *fakeWatcher) Err() <-chan error { return w.errs }

func (w *fakeWatcher) Close() error {
	w.once.Do(func() { close(w.closed) })
	return nil
}

// fakeLink is a Link whose reads are fed by the test
type fakeLink struct {
	reads    chan []byte
	readErr  chan error
	writes   chan []byte
	writeErr error
	closed   chan struct{}
	once     sync.Once
}

func newFakeLink() *fakeLink {
	return &fakeLink{
		reads:   make(chan []byte),
		readErr: make(chan error, 1),
		writes:  make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

func (l *fakeLink) Read(buf []byte) (int, error) {
	select {
	case data := <-l.reads:
		return copy(buf, data), nil
	case err := <-l.readErr:
		return 0, fmt.Errorf("%w: %v", ErrLinkLost, err)
	case <-l.closed:
		return 0, ErrLinkClosed
	case <-time.After(time.Millisecond):
		return 0, nil
	}
}

func (l *fakeLink) Write(data []byte) (int, error) {
	if l.writeErr != nil {
		return 0, fmt.Errorf("%w: %v", ErrLinkLost, l.writeErr)
	}
	l.writes <- append([]byte(nil), data...)
	return len(data), nil
}

func (l *fakeLink) Close() error {
	closed := false
	l.once.Do(func() {
		close(l.closed)
		closed = true
	})
	if !closed {
		return ErrLinkClosed
	}
	return nil
}

func (l *fakeLink) isClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

// syncBuffer is a console sink safe to read while a session writes to it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

// recordingReporter keeps every lifecycle message
type recordingReporter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingReporter) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, s)
}

func (r *recordingReporter) Waiting(c Criteria)                 { r.add("waiting") }
func (r *recordingReporter) Connected(d Device)                 { r.add("connected " + d.Path) }
func (r *recordingReporter) Disconnected(d Device, e EndReason) { r.add("disconnected " + d.Path + " " + e.String()) }
func (r *recordingReporter) OpenFailed(d Device, err error)     { r.add("open failed " + d.Path) }

func (r *recordingReporter) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}
