package devserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fortio.org/log"
)

// InterruptContext is done on the first SIGINT or SIGTERM. Signal relaying stops right
// then, so a second Ctrl-C during the graceful shutdown kills the process as usual.
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
		log.LogVf("Interrupt received, a second one terminates immediately")
	}()
	return ctx, stop
}
