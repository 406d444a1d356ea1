package middleware

import (
	"context"
	"time"

	"github.com/xraph/conductor/job"
)

// Timeout returns middleware that enforces a per-call deadline on each
// remote call. The monitoring loop's own budget bounds total polling
// time; this bounds a single hung HTTP exchange. A non-positive d
// disables the deadline.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ job.Handle, _ Op, next Handler) error {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
