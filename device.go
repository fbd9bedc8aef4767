package ttymon

import "fmt"

// Action is the kind of hotplug change a Device snapshot describes
type Action int

const (
	ActionOther Action = iota
	ActionAdd
	ActionRemove
)

// ParseAction maps a kernel/udev action string onto an Action
func ParseAction(s string) Action {
	switch s {
	case "add":
		return ActionAdd
	case "remove":
		return ActionRemove
	default:
		return ActionOther
	}
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	default:
		return "other"
	}
}

// Device is an immutable snapshot of one tty device, taken either from an
// enumeration query or from a hotplug notification. Vendor and Serial may be
// absent, which is recorded by HasVendor and HasSerial.
type Device struct {
	Path      string
	Vendor    string
	HasVendor bool
	Serial    string
	HasSerial bool
	Action    Action
}

// String renders the device the way status lines show it
func (d Device) String() string {
	serial := d.Serial
	if !d.HasSerial {
		serial = "?"
	}
	return fmt.Sprintf("%s (serial %s)", d.Path, serial)
}
