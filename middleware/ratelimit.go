package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/xraph/conductor/job"
)

// RateLimit returns middleware that gates remote calls behind a token
// bucket. It blocks until a token is available or ctx is done. This
// keeps an aggressive poll loop from tripping service-side throttling
// in the first place rather than recovering from it afterwards.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(ctx context.Context, _ job.Handle, op Op, next Handler) error {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("middleware: rate limit %s: %w", op, err)
		}
		return next(ctx)
	}
}
