// Package sysfs describes tty devices from /sys and watches /dev for them
// with inotify. It needs neither cgo nor libudev.
package sysfs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/allbin/ttymon"
)

const (
	DefaultDevDir = "/dev"
	DefaultSysDir = "/sys/class/tty"
)

// readSysfsFile returns the trimmed content of a sysfs attribute and whether
// the attribute exists
func readSysfsFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// udevString mirrors how udev derives ID_VENDOR from the USB manufacturer
// string: whitespace becomes underscores.
func udevString(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

// describe builds the snapshot for tty name by walking up from its sysfs
// device link to the USB device directory (the one holding idVendor).
func describe(devDir, sysDir, name string, action ttymon.Action) ttymon.Device {
	d := ttymon.Device{
		Path:   filepath.Join(devDir, name),
		Action: action,
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(sysDir, name, "device"))
	if err != nil {
		return d
	}
	for dir := resolved; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			if v, ok := readSysfsFile(filepath.Join(dir, "manufacturer")); ok && v != "" {
				d.Vendor, d.HasVendor = udevString(v), true
			}
			if s, ok := readSysfsFile(filepath.Join(dir, "serial")); ok && s != "" {
				d.Serial, d.HasSerial = udevString(s), true
			}
			return d
		}
		if parent := filepath.Dir(dir); parent == dir {
			return d
		}
	}
}

// enumerate lists every tty in sysDir that is backed by a device. Virtual
// terminals have no device link and are skipped.
func enumerate(devDir, sysDir string) ([]ttymon.Device, error) {
	entries, err := os.ReadDir(sysDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if _, err := os.Stat(filepath.Join(sysDir, name, "device")); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	devices := make([]ttymon.Device, 0, len(names))
	for _, name := range names {
		devices = append(devices, describe(devDir, sysDir, name, ttymon.ActionOther))
	}
	return devices, nil
}
