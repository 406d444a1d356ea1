// Package remote defines the contract with the external cluster
// scheduling service: a thin typed client over submit, describe, and
// terminate, plus the transport-error taxonomy shared by everything
// that calls it.
//
// This package owns no implementation. The awsbatch package provides a
// production client; tests supply fakes.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/conductor/backoff"
	"github.com/xraph/conductor/job"
)

// Client is the typed interface over the scheduling service. All
// methods block until the service responds or ctx is done.
//
// Implementations classify retryable transport failures (throttling,
// timeouts) by returning a *TransientError; any other error is treated
// as fatal by callers.
type Client interface {
	// SubmitJob submits the spec and returns the service-assigned
	// handle. Callers never retry this: submission is not assumed
	// idempotent.
	SubmitJob(ctx context.Context, spec job.Spec) (job.Handle, error)

	// DescribeJob returns a point-in-time snapshot of the job.
	DescribeJob(ctx context.Context, h job.Handle) (*job.Description, error)

	// TerminateJob asks the service to stop the job, recording reason.
	// Terminating an already-terminal job is not an error.
	TerminateJob(ctx context.Context, h job.Handle, reason string) error
}

// TransientError marks a transport failure that is worth retrying:
// throttling, timeouts, connection resets. Client implementations wrap
// such failures in a *TransientError; everything else passes through
// unwrapped and is treated as fatal.
type TransientError struct {
	// Op names the client operation that failed (e.g. "DescribeJob").
	Op string
	// Err is the underlying transport error.
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("remote: transient %s failure: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a *TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// DescribeWithRetry calls c.DescribeJob, retrying up to retries times
// on transient transport errors with delays from bo. It makes at most
// retries+1 calls. A non-transient error or ctx cancellation returns
// immediately; exhausting the retry budget returns the last transient
// error.
func DescribeWithRetry(ctx context.Context, c Client, h job.Handle, retries int, bo backoff.Strategy) (*job.Description, error) {
	var last error
	for attempt := 0; ; attempt++ {
		desc, err := c.DescribeJob(ctx, h)
		if err == nil {
			return desc, nil
		}
		if !IsTransient(err) {
			return nil, err
		}

		last = err
		if attempt >= retries {
			return nil, last
		}
		if err := sleep(ctx, bo.Delay(attempt+1)); err != nil {
			return nil, err
		}
	}
}

// sleep blocks for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
