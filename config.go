package ttymon

import "time"

// LinkConfig holds the configuration for a serial link. Framing is always
// 8N1 without flow control; only speed and read pacing are tunable.
type LinkConfig struct {
	BaudRate    int
	ReadTimeout time.Duration // how long one Read waits for data
	ReadSize    int           // upper bound of bytes returned by one Read
}

// LinkOption is a functional option for configuring a serial link
type LinkOption func(*LinkConfig) error

// DefaultLinkConfig returns a configuration with sensible defaults
func DefaultLinkConfig() LinkConfig {
	return LinkConfig{
		BaudRate:    115200,
		ReadTimeout: 5 * time.Millisecond,
		ReadSize:    256,
	}
}

var standardBaudRates = map[int]bool{
	50: true, 75: true, 110: true, 134: true, 150: true, 200: true, 300: true,
	600: true, 1200: true, 1800: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true, 230400: true,
	460800: true, 500000: true, 576000: true, 921600: true, 1000000: true,
	1152000: true, 1500000: true, 2000000: true, 2500000: true, 3000000: true,
	3500000: true, 4000000: true,
}

// WithBaudRate sets the baud rate. USB CDC devices ignore it, but real UART
// bridges do not.
func WithBaudRate(rate int) LinkOption {
	return func(c *LinkConfig) error {
		if !standardBaudRates[rate] {
			return ErrInvalidConfig
		}
		c.BaudRate = rate
		return nil
	}
}

// Read pacing limits. The read timeout stays under 10ms so console input
// never waits long behind an idle read.
const (
	minReadTimeout = time.Millisecond
	maxReadTimeout = 9 * time.Millisecond
	maxReadSize    = 65536
)

// WithReadTimeout sets how long a single read may wait (1ms to 9ms)
func WithReadTimeout(timeout time.Duration) LinkOption {
	return func(c *LinkConfig) error {
		if timeout < minReadTimeout || timeout > maxReadTimeout {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithReadSize bounds the number of bytes a single read returns
func WithReadSize(n int) LinkOption {
	return func(c *LinkConfig) error {
		if n < 1 || n > maxReadSize {
			return ErrInvalidConfig
		}
		c.ReadSize = n
		return nil
	}
}
