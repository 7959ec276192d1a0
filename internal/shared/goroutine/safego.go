// Package goroutine runs background work detached from the request that
// started it.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/tenantdesk/helpdesk/internal/shared/logger"
)

// Detach runs fn on its own goroutine with a context that keeps the values of
// parent but ignores its cancellation. A non-zero timeout bounds the run.
// Errors and panics are logged, never propagated. The returned channel is
// closed once fn has finished.
func Detach(parent context.Context, log logger.Interface, task string, timeout time.Duration, fn func(context.Context) error) <-chan struct{} {
	done := make(chan struct{})
	ctx := context.WithoutCancel(parent)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("background task panicked",
					"task", task,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
			}
		}()

		runCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		started := time.Now()
		if err := fn(runCtx); err != nil {
			log.Warnw("background task failed", "task", task, "elapsed", time.Since(started), "error", err)
		}
	}()

	return done
}
