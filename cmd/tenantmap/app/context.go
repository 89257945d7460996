package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals derives a context cancelled on SIGINT or SIGTERM,
// so an in-flight sync stops at the next candidate boundary instead of
// being killed mid-write.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
