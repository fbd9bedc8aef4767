package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/allbin/ttymon"
)

func TestReporterMessages(t *testing.T) {
	teensy := ttymon.Device{Path: "/dev/ttyACM0", Serial: "12345", HasSerial: true}

	tests := []struct {
		name   string
		report func(r *Reporter)
		want   string
	}{
		{
			name:   "waiting any",
			report: func(r *Reporter) { r.Waiting(ttymon.DefaultCriteria()) },
			want:   "Waiting for Teensy...",
		},
		{
			name: "waiting serial",
			report: func(r *Reporter) {
				r.Waiting(ttymon.Criteria{VendorPrefix: "Teensy", Serial: "12345"})
			},
			want: "Waiting for Teensy with serial 12345 ...",
		},
		{
			name:   "connected",
			report: func(r *Reporter) { r.Connected(teensy) },
			want:   "Teensy device connected @/dev/ttyACM0 (serial 12345)",
		},
		{
			name:   "disconnected",
			report: func(r *Reporter) { r.Disconnected(teensy, ttymon.EndRemoved) },
			want:   "Teensy device @/dev/ttyACM0 disconnected.",
		},
		{
			name:   "link lost",
			report: func(r *Reporter) { r.Disconnected(teensy, ttymon.EndLinkLost) },
			want:   "serial link lost",
		},
		{
			name:   "open failed",
			report: func(r *Reporter) { r.OpenFailed(teensy, errors.New("permission denied")) },
			want:   "Unable to open port '/dev/ttyACM0'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.report(NewReporter(&buf, "Teensy"))
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
			if !strings.HasSuffix(buf.String(), "\n") {
				t.Errorf("output %q is not newline terminated", buf.String())
			}
		})
	}
}

func TestDeviceLine(t *testing.T) {
	d := ttymon.Device{Path: "/dev/ttyACM1", Serial: "42", HasSerial: true}
	want := "Teensy device serial 42    found @/dev/ttyACM1"
	if got := DeviceLine("Teensy", d); got != want {
		t.Errorf("DeviceLine() = %q, want %q", got, want)
	}

	d.HasSerial = false
	if got := DeviceLine("Teensy", d); !strings.Contains(got, "serial ?") {
		t.Errorf("DeviceLine() without serial = %q", got)
	}
}
