package ttymon

import (
	"fmt"
	"sync/atomic"

	"go.bug.st/serial"
)

// Link is the byte channel to the device. Read may return zero bytes
// without error when nothing arrived within the read timeout.
type Link interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	Close() error
}

// Opener opens the link for a device path
type Opener func(path string) (Link, error)

// SerialLink is a Link over a real serial port
type SerialLink struct {
	port   serial.Port
	path   string
	config LinkConfig
	closed atomic.Bool
}

// Ensure SerialLink implements Link at compile time
var _ Link = (*SerialLink)(nil)

// OpenLink opens a serial port with the given device path and options
func OpenLink(path string, opts ...LinkOption) (*SerialLink, error) {
	config := DefaultLinkConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrOpenFailure, path, err)
	}
	if err := port.SetReadTimeout(config.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("%w %s: failed to set read timeout: %v", ErrOpenFailure, path, err)
	}

	return &SerialLink{port: port, path: path, config: config}, nil
}

// LinkOpener returns an Opener that applies opts to every port it opens
func LinkOpener(opts ...LinkOption) Opener {
	return func(path string) (Link, error) {
		return OpenLink(path, opts...)
	}
}

// Read reads at most ReadSize bytes. Zero bytes means the read timeout
// elapsed; any failure is reported as ErrLinkLost.
func (l *SerialLink) Read(buf []byte) (int, error) {
	if l.closed.Load() {
		return 0, ErrLinkClosed
	}
	if len(buf) > l.config.ReadSize {
		buf = buf[:l.config.ReadSize]
	}
	n, err := l.port.Read(buf)
	if err != nil {
		return n, fmt.Errorf("%w: read %s: %v", ErrLinkLost, l.path, err)
	}
	return n, nil
}

// Write writes data to the device. Any failure is reported as ErrLinkLost.
func (l *SerialLink) Write(data []byte) (int, error) {
	if l.closed.Load() {
		return 0, ErrLinkClosed
	}
	n, err := l.port.Write(data)
	if err != nil {
		return n, fmt.Errorf("%w: write %s: %v", ErrLinkLost, l.path, err)
	}
	return n, nil
}

// Close closes the serial port
func (l *SerialLink) Close() error {
	if l.closed.Swap(true) {
		return ErrLinkClosed
	}
	return l.port.Close()
}
