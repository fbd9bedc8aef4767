package ttymon

import (
	"bytes"
	"io"
)

// flusher is implemented by buffered sinks such as *bufio.Writer
type flusher interface {
	Flush() error
}

// Colorizer writes device output to a console sink, coloring every line that
// starts with a "<letter>:" tag known to its Palette. It holds back at most
// one byte at a line start, until it can tell whether a tag follows.
//
// A Colorizer is not safe for concurrent use; each session owns its own.
type Colorizer struct {
	out          io.Writer
	palette      *Palette
	resetPerLine bool

	pending []byte
	column  int
	colored bool
	scratch []byte
}

// ColorizerOption configures a Colorizer
type ColorizerOption func(*Colorizer)

// WithResetPerLine clears the color run at every line start. Without it a
// line ending gets a reset escape whenever any earlier line was colored.
func WithResetPerLine() ColorizerOption {
	return func(c *Colorizer) {
		c.resetPerLine = true
	}
}

// NewColorizer creates a Colorizer writing to out. A nil palette means
// DefaultPalette.
func NewColorizer(out io.Writer, palette *Palette, opts ...ColorizerOption) *Colorizer {
	if palette == nil {
		palette = DefaultPalette()
	}
	c := &Colorizer{out: out, palette: palette}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Write colorizes p line by line and emits every finished segment right away
func (c *Colorizer) Write(p []byte) (int, error) {
	buf := p
	if len(c.pending) > 0 {
		buf = append(c.pending, p...)
		c.pending = nil
	}

	for {
		nl := bytes.IndexByte(buf, '\n')
		if c.column == 0 && nl < 0 && len(buf) < 2 {
			if len(buf) > 0 {
				c.pending = append([]byte(nil), buf...)
			}
			return len(p), nil
		}

		line := buf
		if nl >= 0 {
			line = buf[:nl+1]
		}

		var prefix, suffix string
		if c.column == 0 {
			if c.resetPerLine {
				c.colored = false
			}
			if len(buf) >= 2 && buf[1] == ':' {
				if escape, ok := c.palette.Lookup(buf[0]); ok {
					prefix = escape
					c.colored = true
				}
			}
		}
		if nl >= 0 && c.colored {
			suffix = ResetEscape
		}

		if err := c.emit(prefix, line, suffix); err != nil {
			return 0, err
		}

		c.column += len(line)
		if nl < 0 {
			return len(p), nil
		}
		buf = buf[nl+1:]
		c.column = 0
	}
}

// Flush emits a held lookahead byte as is. Sessions call it on teardown so
// a trailing byte is not lost.
func (c *Colorizer) Flush() error {
	if len(c.pending) == 0 {
		return nil
	}
	line := c.pending
	c.pending = nil
	if err := c.emit("", line, ""); err != nil {
		return err
	}
	c.column += len(line)
	return nil
}

// AtLineStart reports whether the next emitted byte starts a new line
func (c *Colorizer) AtLineStart() bool {
	return c.column == 0 && len(c.pending) == 0
}

func (c *Colorizer) emit(prefix string, line []byte, suffix string) error {
	c.scratch = append(c.scratch[:0], prefix...)
	c.scratch = append(c.scratch, line...)
	c.scratch = append(c.scratch, suffix...)
	if _, err := c.out.Write(c.scratch); err != nil {
		return err
	}
	if f, ok := c.out.(flusher); ok {
		return f.Flush()
	}
	return nil
}
