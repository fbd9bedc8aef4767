// Package ttymon monitors a hot-pluggable USB serial device, such as a
// Teensy, from the console.
//
// A Controller waits for a device whose vendor starts with a configured
// prefix (and optionally has a given serial number), opens its tty, and runs
// a Session that relays device output to the console and console input to
// the device. When the device is unplugged or the link fails the Controller
// goes back to waiting.
//
// # Basic Usage
//
//	ctl := ttymon.NewController(watcher, input, os.Stdout,
//	    ttymon.WithCriteria(ttymon.Criteria{VendorPrefix: "Teensy", Serial: "12345"}),
//	    ttymon.WithOpener(ttymon.LinkOpener(ttymon.WithBaudRate(115200))),
//	)
//	if err := ctl.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// watcher is any Watcher implementation; the internal udev and sysfs
// packages provide one backed by udev netlink and one backed by inotify on
// /dev. input is a channel of console bytes.
//
// # Hotplug Ordering
//
// Watcher.Start subscribes to notifications before Enumerate lists what is
// already attached, so a device plugged in between the two is seen as an
// event rather than lost.
//
// # Line Colors
//
// Device output passes through a Colorizer. A line that begins with a letter
// and a colon is wrapped in that letter's escape from the Palette:
//
//	W:  light yellow
//	D:  light blue
//	C:  light red
//	E:  light red
//	I:  no color
//
// Every byte the device sends reaches the console unchanged; only escape
// sequences are added.
//
// # Error Handling
//
//	var (
//	    ErrOpenFailure        // tty could not be opened
//	    ErrLinkLost           // read or write on an open link failed
//	    ErrLinkClosed         // link already closed
//	    ErrWatcherClosed      // hotplug stream ended
//	    ErrWatcherUnavailable // hotplug backend not built in
//	    ErrInvalidConfig      // bad option value
//	)
//
// Use errors.Is() for error type checking. A lost link ends a Session
// normally and is never returned by Controller.Run.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - ReadTimeout: 5ms
//   - VendorPrefix: Teensy
package ttymon
