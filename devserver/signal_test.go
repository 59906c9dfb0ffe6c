//go:build !windows
// +build !windows

package devserver_test

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"constellation.io/devserve/devserver"
)

func TestInterruptContext(t *testing.T) {
	ctx, stop := devserver.InterruptContext(context.Background())
	defer stop()
	if ctx.Err() != nil {
		t.Fatalf("Context done before any signal: %v", ctx.Err())
	}
	// Keeps the test binary alive whatever the relaying state.
	guard := make(chan os.Signal, 2)
	signal.Notify(guard, syscall.SIGTERM)
	defer signal.Stop(guard)
	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Context not done after SIGTERM")
	}
	// Second signal after the first: must not panic nor re-trigger anything, the context stays done.
	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}
	<-guard
	if ctx.Err() == nil {
		t.Errorf("Context should stay done")
	}
}

func TestInterruptContextParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := devserver.InterruptContext(parent)
	defer stop()
	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Context not done after parent cancel")
	}
}
