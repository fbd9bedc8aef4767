package ttymon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// EndReason tells why a session ended
type EndReason int

const (
	EndRemoved     EndReason = iota // hotplug remove for the session's device
	EndLinkLost                     // read or write on the link failed
	EndInterrupted                  // context cancelled
	EndFailed                       // unexpected failure, see the returned error
)

func (r EndReason) String() string {
	switch r {
	case EndRemoved:
		return "removed"
	case EndLinkLost:
		return "link lost"
	case EndInterrupted:
		return "interrupted"
	default:
		return "failed"
	}
}

// Session relays bytes between one connected device and the console until
// the device goes away. All of its state is touched only by the goroutine
// calling Run; the link pump only moves bytes into a channel.
type Session struct {
	device  Device
	link    Link
	events  <-chan Device
	errs    <-chan error
	input   <-chan byte
	out     *Colorizer
	logger  *slog.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithSessionLogger sets the logger for diagnostic messages
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession prepares a session for dev over an already open link. The
// session takes ownership of link and closes it when Run returns. input
// delivers console bytes; out receives device output.
func NewSession(dev Device, link Link, w Watcher, input <-chan byte, out *Colorizer, opts ...SessionOption) *Session {
	s := &Session{
		device: dev,
		link:   link,
		events: w.Events(),
		errs:   w.Err(),
		input:  input,
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// outcome is the result of servicing one ready source
type outcome struct {
	done   bool
	reason EndReason
	err    error
}

var keepGoing = outcome{}

func ended(reason EndReason, err error) outcome {
	return outcome{done: true, reason: reason, err: err}
}

// Run services the watcher, the link and the console until the device is
// removed, the link fails, or ctx is cancelled. A link failure is a normal
// end and is not returned as an error.
func (s *Session) Run(ctx context.Context) (EndReason, error) {
	pumpCtx, stopPump := context.WithCancel(ctx)
	chunks := make(chan []byte)
	readErrs := make(chan error, 1)
	pumpDone := make(chan struct{})
	go s.pump(pumpCtx, chunks, readErrs, pumpDone)

	defer func() {
		stopPump()
		<-pumpDone
		if err := s.out.Flush(); err != nil {
			s.logger.Debug("flush console output", "error", err)
		}
		if err := s.link.Close(); err != nil && !errors.Is(err, ErrLinkClosed) {
			s.logger.Debug("close link", "path", s.device.Path, "error", err)
		}
	}()

	for {
		var o outcome
		select {
		case <-ctx.Done():
			return EndInterrupted, ctx.Err()
		case d, ok := <-s.events:
			o = s.onEvent(d, ok)
		case err, ok := <-s.errs:
			if !ok {
				err = ErrWatcherClosed
			}
			o = ended(EndFailed, fmt.Errorf("device watcher: %w", err))
		case chunk := <-chunks:
			o = s.onChunk(chunk)
		case err := <-readErrs:
			o = s.onLinkError(err)
		case b, ok := <-s.input:
			o = s.onInput(b, ok)
		}
		if o.done {
			return o.reason, o.err
		}

		if o := s.serviceReady(chunks, readErrs); o.done {
			return o.reason, o.err
		}
	}
}

// serviceReady takes at most one pending item from each source, in the
// order watcher, serial, console, without blocking. It stops at the first
// item that ends the session.
func (s *Session) serviceReady(chunks <-chan []byte, readErrs <-chan error) outcome {
	select {
	case d, ok := <-s.events:
		if o := s.onEvent(d, ok); o.done {
			return o
		}
	default:
	}

	select {
	case chunk := <-chunks:
		if o := s.onChunk(chunk); o.done {
			return o
		}
	case err := <-readErrs:
		return s.onLinkError(err)
	default:
	}

	select {
	case b, ok := <-s.input:
		return s.onInput(b, ok)
	default:
	}
	return keepGoing
}

func (s *Session) onEvent(d Device, ok bool) outcome {
	if !ok {
		return ended(EndFailed, ErrWatcherClosed)
	}
	if d.Path != s.device.Path || d.Action != ActionRemove {
		s.logger.Debug("ignoring device event", "path", d.Path, "action", d.Action)
		return keepGoing
	}
	return ended(EndRemoved, nil)
}

func (s *Session) onChunk(chunk []byte) outcome {
	if _, err := s.out.Write(chunk); err != nil {
		return ended(EndFailed, fmt.Errorf("console output: %w", err))
	}
	return keepGoing
}

func (s *Session) onLinkError(err error) outcome {
	s.logger.Debug("serial read failed", "path", s.device.Path, "error", err)
	return ended(EndLinkLost, nil)
}

func (s *Session) onInput(b byte, ok bool) outcome {
	if !ok {
		// Console input hit EOF; keep relaying device output.
		s.logger.Debug("console input closed")
		s.input = nil
		return keepGoing
	}
	if b == '\n' {
		b = '\r'
	}
	if _, err := s.link.Write([]byte{b}); err != nil {
		s.logger.Debug("serial write failed", "path", s.device.Path, "error", err)
		return ended(EndLinkLost, nil)
	}
	return keepGoing
}

// pump reads the link until ctx ends or a read fails. Empty reads are the
// read timeout expiring and are skipped. The link bounds each read, so the
// buffer only has to hold the largest read any link is configured for.
func (s *Session) pump(ctx context.Context, chunks chan<- []byte, errs chan<- error, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, maxReadSize)
	for ctx.Err() == nil {
		n, err := s.link.Read(buf)
		if n > 0 {
			select {
			case chunks <- append([]byte(nil), buf[:n]...):
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errs <- err
			return
		}
	}
}
