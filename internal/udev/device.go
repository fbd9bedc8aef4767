// Package udev watches tty hotplug events through the udev netlink socket.
package udev

import "github.com/allbin/ttymon"

const (
	// Subsystem is the udev subsystem serial ports live in
	Subsystem = "tty"

	propVendor = "ID_VENDOR"
	propSerial = "ID_SERIAL_SHORT"
)

// describe builds a device snapshot from udev data. Properties that udev did
// not set stay absent.
func describe(devnode, action string, props map[string]string) ttymon.Device {
	d := ttymon.Device{
		Path:   devnode,
		Action: ttymon.ParseAction(action),
	}
	d.Vendor, d.HasVendor = props[propVendor]
	d.Serial, d.HasSerial = props[propSerial]
	return d
}
