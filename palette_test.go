package ttymon

import (
	"errors"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		tag      byte
		escape   string
		expected bool
	}{
		{'W', "\033[1;33m", true},
		{'I', "", true},
		{'D', "\033[1;34m", true},
		{'C', "\033[1;31m", true},
		{'E', "\033[1;31m", true},
		{'X', "", false},
		{'w', "", false},
	}

	for _, tt := range tests {
		escape, ok := p.Lookup(tt.tag)
		if escape != tt.escape || ok != tt.expected {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.tag, escape, ok, tt.escape, tt.expected)
		}
	}

	if got := string(p.Tags()); got != "CDEIW" {
		t.Errorf("Tags() = %q, want %q", got, "CDEIW")
	}
}

func TestColorEscape(t *testing.T) {
	tests := []struct {
		name    string
		escape  string
		wantErr bool
	}{
		{"light-yellow", "\033[1;33m", false},
		{"yellow", "\033[1;33m", false},
		{"dark-cyan", "\033[2;36m", false},
		{"Light-Black", "\033[1;30m", false},
		{"white", "\033[1;37m", false},
		{"none", "", false},
		{"", "", false},
		{"orange", "", true},
		{"dark-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			escape, err := ColorEscape(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorEscape(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if escape != tt.escape {
				t.Errorf("ColorEscape(%q) = %q, want %q", tt.name, escape, tt.escape)
			}
		})
	}
}

func TestNewPaletteOverrides(t *testing.T) {
	p, err := NewPalette(map[string]string{"I": "dark-green", "T": "magenta"})
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	if escape, _ := p.Lookup('I'); escape != "\033[2;32m" {
		t.Errorf("I = %q, want dark green", escape)
	}
	if escape, ok := p.Lookup('T'); !ok || escape != "\033[1;35m" {
		t.Errorf("T = (%q, %v), want light magenta", escape, ok)
	}
	if escape, _ := p.Lookup('W'); escape != "\033[1;33m" {
		t.Errorf("W changed to %q", escape)
	}

	// Overrides never leak into the defaults
	if _, ok := DefaultPalette().Lookup('T'); ok {
		t.Error("override leaked into DefaultPalette")
	}
}

func TestNewPaletteInvalid(t *testing.T) {
	for _, overrides := range []map[string]string{
		{"WW": "red"},
		{"1": "red"},
		{"": "red"},
		{"W": "purple"},
	} {
		if _, err := NewPalette(overrides); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewPalette(%v) error = %v, want ErrInvalidConfig", overrides, err)
		}
	}
}

func TestColorizerUsesCustomPalette(t *testing.T) {
	p, err := NewPalette(map[string]string{"T": "green"})
	if err != nil {
		t.Fatal(err)
	}
	var out syncBuffer
	c := NewColorizer(&out, p)
	c.Write([]byte("T: trace\n"))
	if want := "\033[1;32mT: trace\n" + ResetEscape; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
