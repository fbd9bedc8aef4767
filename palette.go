package ttymon

import (
	"fmt"
	"sort"
	"strings"
)

// ANSI escapes for the eight base colors, bold ("light") and faint ("dark")
const (
	escapeLight = "\033[1;%dm"
	escapeDark  = "\033[2;%dm"

	// ResetEscape ends a color run
	ResetEscape = "\033[0m"
)

var colorOffsets = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ColorEscape resolves a color name such as "light-yellow", "dark-cyan" or
// "none" to its escape sequence. A bare base name means the light variant.
func ColorEscape(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "none" || name == "" {
		return "", nil
	}
	format := escapeLight
	switch {
	case strings.HasPrefix(name, "light-"):
		name = strings.TrimPrefix(name, "light-")
	case strings.HasPrefix(name, "dark-"):
		name = strings.TrimPrefix(name, "dark-")
		format = escapeDark
	}
	offset, ok := colorOffsets[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, name)
	}
	return fmt.Sprintf(format, 30+offset), nil
}

// Palette maps a line tag letter to the escape that colors the line. It is
// built once at startup and only read afterwards, so one Palette is shared by
// every Colorizer.
type Palette struct {
	colors map[byte]string
}

// DefaultPalette returns the stock tag colors
func DefaultPalette() *Palette {
	return &Palette{colors: map[byte]string{
		'W': fmt.Sprintf(escapeLight, 33),
		'I': "",
		'D': fmt.Sprintf(escapeLight, 34),
		'C': fmt.Sprintf(escapeLight, 31),
		'E': fmt.Sprintf(escapeLight, 31),
	}}
}

// NewPalette returns the default palette with overrides applied. Keys are
// single ASCII letters, values are color names accepted by ColorEscape.
func NewPalette(overrides map[string]string) (*Palette, error) {
	p := DefaultPalette()
	for tag, name := range overrides {
		if len(tag) != 1 || !isASCIILetter(tag[0]) {
			return nil, fmt.Errorf("%w: color tag %q must be a single letter", ErrInvalidConfig, tag)
		}
		escape, err := ColorEscape(name)
		if err != nil {
			return nil, err
		}
		p.colors[tag[0]] = escape
	}
	return p, nil
}

// Lookup returns the escape for tag and whether tag is a known tag at all.
// A known tag may map to the empty escape.
func (p *Palette) Lookup(tag byte) (string, bool) {
	escape, ok := p.colors[tag]
	return escape, ok
}

// Tags lists the known tags in order
func (p *Palette) Tags() []byte {
	tags := make([]byte, 0, len(p.colors))
	for tag := range p.colors {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
