// Package hook defines the extension system for conductor. Extensions
// are notified of job lifecycle events (submitted, succeeded, failed,
// cancelled) and can react to them: metrics, audit trails, external
// notifications.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about. Hooks are observational: a hook error
// is logged and never fails the invocation.
package hook

import (
	"context"

	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// JobSubmitted is called after a job is accepted by the scheduling
// service and a handle exists.
type JobSubmitted interface {
	OnJobSubmitted(ctx context.Context, inv id.InvocationID, spec job.Spec, h job.Handle) error
}

// JobSucceeded is called once the final success check confirms the job
// reached SUCCEEDED.
type JobSucceeded interface {
	OnJobSucceeded(ctx context.Context, inv id.InvocationID, d *job.Description) error
}

// JobFailed is called when monitoring ends in a terminal non-success
// outcome: the job FAILED, polling timed out, or a fatal transport
// error stopped monitoring.
type JobFailed interface {
	OnJobFailed(ctx context.Context, inv id.InvocationID, d *job.Description, err error) error
}

// JobCancelled is called after a terminate request was acknowledged by
// the service.
type JobCancelled interface {
	OnJobCancelled(ctx context.Context, inv id.InvocationID, h job.Handle, reason string) error
}
