package ttymon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Controller alternates between searching for the target device and running
// a Session for it, for as long as its context lives.
type Controller struct {
	watcher      Watcher
	input        <-chan byte
	out          io.Writer
	criteria     Criteria
	opener       Opener
	palette      *Palette
	resetPerLine bool
	logger       *slog.Logger
	reporter     Reporter
	onState      func(State)

	state State
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithCriteria selects the target device
func WithCriteria(c Criteria) ControllerOption {
	return func(ctl *Controller) {
		ctl.criteria = c
	}
}

// WithOpener replaces how links are opened
func WithOpener(open Opener) ControllerOption {
	return func(ctl *Controller) {
		ctl.opener = open
	}
}

// WithPalette sets the line tag colors shared by all sessions
func WithPalette(p *Palette) ControllerOption {
	return func(ctl *Controller) {
		ctl.palette = p
	}
}

// WithColorResetPerLine makes every session's Colorizer clear the color run
// at line start
func WithColorResetPerLine(enabled bool) ControllerOption {
	return func(ctl *Controller) {
		ctl.resetPerLine = enabled
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(ctl *Controller) {
		ctl.logger = logger
	}
}

// WithReporter sets where lifecycle messages go
func WithReporter(r Reporter) ControllerOption {
	return func(ctl *Controller) {
		ctl.reporter = r
	}
}

// WithStateHook registers fn to be called on every state transition. fn runs
// on the controller goroutine and must not block.
func WithStateHook(fn func(State)) ControllerOption {
	return func(ctl *Controller) {
		ctl.onState = fn
	}
}

// NewController creates a Controller. input delivers console bytes and out is
// the console sink.
func NewController(w Watcher, input <-chan byte, out io.Writer, opts ...ControllerOption) *Controller {
	ctl := &Controller{
		watcher:  w,
		input:    input,
		out:      out,
		criteria: DefaultCriteria(),
		opener:   LinkOpener(),
		palette:  DefaultPalette(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	if ctl.reporter == nil {
		ctl.reporter = logReporter{logger: ctl.logger}
	}
	return ctl
}

// Run subscribes to hotplug events, connects to a matching device that is
// already attached, then keeps waiting for matching devices to be added.
// It returns nil when ctx is cancelled and an error only for failures that
// no later hotplug event could recover from.
func (ctl *Controller) Run(ctx context.Context) error {
	ctl.setState(State{Phase: Searching})

	// Subscribe before enumerating, otherwise a device added in between
	// would be missed by both.
	if err := ctl.watcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start device watcher: %w", err)
	}
	defer ctl.watcher.Close()

	present, err := ctl.watcher.Enumerate()
	if err != nil {
		return fmt.Errorf("failed to enumerate devices: %w", err)
	}
	for _, d := range present {
		if !ctl.criteria.Matches(d) {
			continue
		}
		if err := ctl.connect(ctx, d); err != nil {
			return ctl.finish(ctx, err)
		}
	}

	for {
		ctl.reporter.Waiting(ctl.criteria)
		d, err := ctl.waitForDevice(ctx)
		if err != nil {
			return ctl.finish(ctx, err)
		}
		if err := ctl.connect(ctx, d); err != nil {
			return ctl.finish(ctx, err)
		}
	}
}

// State returns the current state. Only meaningful from the goroutine
// running Run, or after Run has returned.
func (ctl *Controller) State() State {
	return ctl.state
}

func (ctl *Controller) waitForDevice(ctx context.Context) (Device, error) {
	for {
		d, err := Poll(ctx, ctl.watcher)
		if err != nil {
			return Device{}, err
		}
		if d.Action != ActionAdd {
			continue
		}
		if !ctl.criteria.Matches(d) {
			ctl.logger.Debug("device does not match", "path", d.Path, "vendor", d.Vendor, "serial", d.Serial)
			continue
		}
		return d, nil
	}
}

// connect runs one session. A port that cannot be opened is reported and
// skipped; the next add event retries naturally.
func (ctl *Controller) connect(ctx context.Context, d Device) error {
	link, err := ctl.opener(d.Path)
	if err != nil {
		ctl.reporter.OpenFailed(d, err)
		return nil
	}

	ctl.setState(State{Phase: Connected, Device: d})
	ctl.reporter.Connected(d)

	var colorOpts []ColorizerOption
	if ctl.resetPerLine {
		colorOpts = append(colorOpts, WithResetPerLine())
	}
	out := NewColorizer(ctl.out, ctl.palette, colorOpts...)
	session := NewSession(d, link, ctl.watcher, ctl.input, out, WithSessionLogger(ctl.logger))
	reason, err := session.Run(ctx)

	ctl.setState(State{Phase: Searching})
	if err != nil {
		return err
	}
	ctl.reporter.Disconnected(d, reason)
	return nil
}

// finish turns errors caused by shutting down into a clean return
func (ctl *Controller) finish(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (ctl *Controller) setState(s State) {
	ctl.state = s
	if ctl.onState != nil {
		ctl.onState(s)
	}
}

// logReporter is the Reporter used when none is configured
type logReporter struct {
	logger *slog.Logger
}

func (r logReporter) Waiting(c Criteria) {
	r.logger.Info("waiting for device", "target", c.Describe())
}

func (r logReporter) Connected(d Device) {
	r.logger.Info("device connected", "device", d.String())
}

func (r logReporter) Disconnected(d Device, reason EndReason) {
	r.logger.Info("device disconnected", "path", d.Path, "reason", reason)
}

func (r logReporter) OpenFailed(d Device, err error) {
	r.logger.Warn("unable to open port", "path", d.Path, "error", err)
}
