package console

import (
	"context"
	"io"
)

// Pump reads r one byte at a time and delivers each byte on the returned
// channel. The channel is unbuffered, so a byte read while no session is
// listening waits in the pump until the next session takes it. The channel
// is closed when r fails or hits EOF.
//
// A read that is already blocked cannot be interrupted; the pump goroutine
// lives until the process exits or r returns.
func Pump(ctx context.Context, r io.Reader) <-chan byte {
	ch := make(chan byte)
	go func() {
		defer close(ch)
		var buf [1]byte
		for {
			n, err := r.Read(buf[:])
			if n == 1 {
				select {
				case ch <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
