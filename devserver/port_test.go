package devserver_test

import (
	"context"
	"net"
	"testing"

	"constellation.io/devserve/devserver"
)

// freePort returns a port that was free a moment ago.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func occupy(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l.Addr().(*net.TCPAddr).Port
}

func TestChoosePort(t *testing.T) {
	ctx := context.Background()
	busy := occupy(t)
	if !devserver.PortInUse(ctx, busy) {
		t.Errorf("Expected port %d to be detected as in use", busy)
	}
	if got := devserver.ChoosePort(ctx, busy); got != busy+1 {
		t.Errorf("ChoosePort(%d) = %d, expected %d", busy, got, busy+1)
	}
	free := freePort(t)
	if got := devserver.ChoosePort(ctx, free); got != free {
		t.Errorf("ChoosePort(%d) = %d, expected the same free port", free, got)
	}
	if got := devserver.ChoosePort(ctx, 0); got != 0 {
		t.Errorf("ChoosePort(0) = %d, expected 0", got)
	}
}

func TestValidatePort(t *testing.T) {
	for _, p := range []int{0, 80, devserver.DefaultPort, 65535} {
		if err := devserver.ValidatePort(p); err != nil {
			t.Errorf("ValidatePort(%d) unexpected error: %v", p, err)
		}
	}
	for _, p := range []int{-1, 65536, 100000} {
		if err := devserver.ValidatePort(p); err == nil {
			t.Errorf("ValidatePort(%d) expected an error", p)
		}
	}
}
