package ttymon

import "strings"

// DefaultVendorPrefix is the udev ID_VENDOR prefix of Teensy boards
// ("Teensyduino").
const DefaultVendorPrefix = "Teensy"

// Criteria selects the target device. An empty Serial matches any device
// whose vendor starts with VendorPrefix.
type Criteria struct {
	VendorPrefix string
	Serial       string
}

// DefaultCriteria matches any Teensy device
func DefaultCriteria() Criteria {
	return Criteria{VendorPrefix: DefaultVendorPrefix}
}

// Matches reports whether d is the target device. It fails closed when the
// vendor is absent.
func (c Criteria) Matches(d Device) bool {
	if !d.HasVendor {
		return false
	}
	if !strings.HasPrefix(d.Vendor, c.VendorPrefix) {
		return false
	}
	if c.Serial == "" {
		return true
	}
	return d.HasSerial && d.Serial == c.Serial
}

// Describe names the target for "waiting" messages
func (c Criteria) Describe() string {
	if c.Serial == "" {
		return c.VendorPrefix
	}
	return c.VendorPrefix + " with serial " + c.Serial
}
