// Package middleware provides composable middleware for calls to the
// remote scheduling service. Middleware wraps client calls
// synchronously and can modify execution (log, record metrics, add
// tracing, rate-limit, enforce deadlines).
//
// Use [Wrap] to decorate a remote.Client:
//
//	client := middleware.Wrap(awsClient,
//	    middleware.Logging(logger),
//	    middleware.Metrics(),
//	    middleware.RateLimit(rate.NewLimiter(rate.Limit(5), 10)),
//	)
package middleware

import (
	"context"

	"github.com/xraph/conductor/job"
)

// Op names a remote client operation.
type Op string

// Operations the client wrapper instruments.
const (
	OpSubmitJob    Op = "SubmitJob"
	OpDescribeJob  Op = "DescribeJob"
	OpTerminateJob Op = "TerminateJob"
)

// Handler is the terminal function that performs the remote call.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the handle of the job the call concerns (zero for
// submissions, which have no handle yet), the operation name, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, h job.Handle, op Op, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, metrics, ratelimit) executes as:
//
//	logging → metrics → ratelimit → remote call
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, h job.Handle, op Op, next Handler) error {
		// Build the chain from the end backwards.
		chained := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := chained
			chained = func(ctx context.Context) error {
				return mw(ctx, h, op, prev)
			}
		}
		return chained(ctx)
	}
}
