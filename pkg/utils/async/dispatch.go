package async

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/m-mizutani/ctxlog"
)

// DefaultTimeout bounds background work detached from a request
const DefaultTimeout = time.Minute

// Dispatch runs handler in the background so an HTTP response can be
// written first. The handler gets a fresh context carrying the caller's
// logger, bounded by DefaultTimeout. Errors and panics are logged.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	newCtx, cancel := newBackgroundContext(ctx, task)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler", "error", err)
		}
	}()
}

func newBackgroundContext(ctx context.Context, task string) (context.Context, context.CancelFunc) {
	newCtx := ctxlog.With(context.Background(), ctxlog.From(ctx).With("task", task))
	return context.WithTimeout(newCtx, DefaultTimeout)
}
