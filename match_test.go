package ttymon

import "testing"

func TestCriteriaMatches(t *testing.T) {
	teensy := Device{Path: "/dev/ttyACM0", Vendor: "Teensyduino", HasVendor: true, Serial: "12345", HasSerial: true}
	noSerial := Device{Path: "/dev/ttyACM1", Vendor: "Teensyduino", HasVendor: true}
	ftdi := Device{Path: "/dev/ttyUSB0", Vendor: "FTDI", HasVendor: true, Serial: "12345", HasSerial: true}
	noVendor := Device{Path: "/dev/ttyS0", Serial: "12345", HasSerial: true}

	tests := []struct {
		name     string
		criteria Criteria
		device   Device
		expected bool
	}{
		{"any teensy", DefaultCriteria(), teensy, true},
		{"any teensy without serial", DefaultCriteria(), noSerial, true},
		{"serial match", Criteria{VendorPrefix: "Teensy", Serial: "12345"}, teensy, true},
		{"serial mismatch", Criteria{VendorPrefix: "Teensy", Serial: "999"}, teensy, false},
		{"serial required but absent", Criteria{VendorPrefix: "Teensy", Serial: "12345"}, noSerial, false},
		{"wrong vendor", DefaultCriteria(), ftdi, false},
		{"wrong vendor with matching serial", Criteria{VendorPrefix: "Teensy", Serial: "12345"}, ftdi, false},
		{"vendor absent", DefaultCriteria(), noVendor, false},
		{"vendor absent with empty prefix", Criteria{}, noVendor, false},
		{"prefix is case sensitive", Criteria{VendorPrefix: "teensy"}, teensy, false},
		{"other vendor prefix", Criteria{VendorPrefix: "FT"}, ftdi, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Matches(tt.device); got != tt.expected {
				t.Errorf("Matches(%+v) = %v, want %v", tt.device, got, tt.expected)
			}
		})
	}
}

func TestCriteriaMatchesIgnoresAction(t *testing.T) {
	d := Device{Path: "/dev/ttyACM0", Vendor: "Teensyduino", HasVendor: true}
	for _, a := range []Action{ActionAdd, ActionRemove, ActionOther} {
		d.Action = a
		if !DefaultCriteria().Matches(d) {
			t.Errorf("Matches with action %v = false, want true", a)
		}
	}
}

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"add":    ActionAdd,
		"remove": ActionRemove,
		"change": ActionOther,
		"bind":   ActionOther,
		"":       ActionOther,
	}
	for in, want := range tests {
		if got := ParseAction(in); got != want {
			t.Errorf("ParseAction(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestListDevices(t *testing.T) {
	w := newFakeWatcher(
		Device{Path: "/dev/ttyS0"},
		Device{Path: "/dev/ttyACM0", Vendor: "Teensyduino", HasVendor: true, Serial: "1", HasSerial: true},
		Device{Path: "/dev/ttyUSB0", Vendor: "FTDI", HasVendor: true},
		Device{Path: "/dev/ttyACM1", Vendor: "Teensyduino", HasVendor: true, Serial: "2", HasSerial: true},
	)
	w.started = true

	devices, err := ListDevices(w, DefaultCriteria())
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(devices) != 2 || devices[0].Path != "/dev/ttyACM0" || devices[1].Path != "/dev/ttyACM1" {
		t.Errorf("unexpected devices %+v", devices)
	}
}
