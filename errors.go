package ttymon

import "errors"

// Predefined error types for robust error handling
var (
	ErrOpenFailure   = errors.New("unable to open serial port")
	ErrLinkLost      = errors.New("serial link lost")
	ErrLinkClosed    = errors.New("serial link is closed")
	ErrWatcherClosed = errors.New("device watcher closed")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Watcher backend errors
	ErrWatcherNotStarted  = errors.New("device watcher not started")
	ErrWatcherUnavailable = errors.New("device watcher backend not available")
)
