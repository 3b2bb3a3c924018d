package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context cancelled on SIGINT, SIGTERM, or any of
// the extra signals passed in.
func NotifyContext(parent context.Context, extra ...os.Signal) (context.Context, context.CancelFunc) {
	sigs := append([]os.Signal{syscall.SIGINT, syscall.SIGTERM}, extra...)
	return signal.NotifyContext(parent, sigs...)
}
