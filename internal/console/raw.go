// Package console puts the controlling terminal into the mode the bridge
// needs and delivers keyboard input one byte at a time.
package console

import (
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// State is a saved terminal configuration
type State struct {
	fd      int
	termios unix.Termios
}

// IsTerminal reports whether fd refers to a terminal
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// MakeCbreak turns off canonical line editing and local echo on fd so every
// key, including backspace, goes straight to the device. Signal generation
// stays on, so Ctrl+C still interrupts. The returned State restores the
// previous mode.
func MakeCbreak(fd int) (*State, error) {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("failed to get termios: %v", err)
	}
	saved := &State{fd: fd, termios: *termios}

	raw := *termios
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("failed to set termios: %v", err)
	}
	return saved, nil
}

// Restore puts the terminal back into the saved mode
func (s *State) Restore() error {
	if err := unix.IoctlSetTermios(s.fd, unix.TCSETS, &s.termios); err != nil {
		return fmt.Errorf("failed to restore termios: %v", err)
	}
	return nil
}
