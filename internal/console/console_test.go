package console

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

func TestPumpDeliversBytesInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := Pump(ctx, strings.NewReader("ab\n"))

	var got []byte
	for b := range ch {
		got = append(got, b)
	}
	if string(got) != "ab\n" {
		t.Errorf("Pump delivered %q, want %q", got, "ab\n")
	}
}

func TestPumpStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Pump(ctx, strings.NewReader("xyz"))

	// Take one byte, then cancel while the pump holds the next one.
	if b := <-ch; b != 'x' {
		t.Fatalf("first byte = %q, want 'x'", b)
	}
	cancel()

	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("pump did not stop after cancel")
		}
	}
}

func TestIsTerminalOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "console")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(int(f.Fd())) {
		t.Error("regular file reported as terminal")
	}
	if _, err := MakeCbreak(int(f.Fd())); err == nil {
		t.Error("MakeCbreak on a regular file should fail")
	}
}
