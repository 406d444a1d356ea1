package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

// Logging returns middleware that logs every remote call. Successful
// calls log at debug (describe calls during a long poll would drown an
// info log); failures log at warn for transient errors and error
// otherwise.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, h job.Handle, op Op, next Handler) error {
		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		attrs := []any{
			slog.String("op", string(op)),
			slog.String("job_id", h.String()),
			slog.Duration("elapsed", elapsed),
		}

		switch {
		case err == nil:
			logger.Debug("remote call completed", attrs...)
		case remote.IsTransient(err):
			logger.Warn("remote call failed transiently",
				append(attrs, slog.String("error", err.Error()))...)
		default:
			logger.Error("remote call failed",
				append(attrs, slog.String("error", err.Error()))...)
		}

		return err
	}
}
