// Package ui renders the bridge's lifecycle messages for the console.
package ui

import (
	"fmt"
	"io"

	"github.com/allbin/ttymon"
	"github.com/allbin/ttymon/internal/ui/styles"
)

// Reporter prints lifecycle messages on the console, between device output
type Reporter struct {
	out    io.Writer
	vendor string
}

// Ensure Reporter implements ttymon.Reporter at compile time
var _ ttymon.Reporter = (*Reporter)(nil)

// NewReporter creates a Reporter writing to out. vendor names the device
// kind in messages, e.g. "Teensy".
func NewReporter(out io.Writer, vendor string) *Reporter {
	if vendor == "" {
		vendor = "Serial"
	}
	return &Reporter{out: out, vendor: vendor}
}

func (r *Reporter) Waiting(c ttymon.Criteria) {
	msg := fmt.Sprintf("Waiting for %s...", r.vendor)
	if c.Serial != "" {
		msg = fmt.Sprintf("Waiting for %s with serial %s ...", r.vendor, c.Serial)
	}
	r.print(styles.StatusWaiting, msg)
}

func (r *Reporter) Connected(d ttymon.Device) {
	r.print(styles.StatusConnected, fmt.Sprintf("%s device connected @%s (serial %s)", r.vendor, d.Path, serialOf(d)))
}

func (r *Reporter) Disconnected(d ttymon.Device, reason ttymon.EndReason) {
	msg := fmt.Sprintf("%s device @%s disconnected.", r.vendor, d.Path)
	if reason == ttymon.EndLinkLost {
		msg += " " + styles.DetailStyle.Render("(serial link lost)")
	}
	r.print(styles.StatusDisconnected, msg)
}

func (r *Reporter) OpenFailed(d ttymon.Device, err error) {
	r.print(styles.StatusError, fmt.Sprintf("Unable to open port '%s'", d.Path))
	fmt.Fprintln(r.out, styles.DetailStyle.Render(err.Error()))
}

func (r *Reporter) print(status styles.StatusType, msg string) {
	fmt.Fprintln(r.out, styles.GetStatusStyle(status).Render(msg))
}

// DeviceLine formats one entry of the --list output
func DeviceLine(vendor string, d ttymon.Device) string {
	return fmt.Sprintf("%s device serial %-5s found @%s", vendor, serialOf(d), d.Path)
}

func serialOf(d ttymon.Device) string {
	if !d.HasSerial {
		return "?"
	}
	return d.Serial
}
