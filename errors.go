package conductor

import (
	"errors"
	"fmt"

	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

var (
	// ErrNilClient indicates the Controller was built without a client.
	ErrNilClient = errors.New("conductor: nil remote client")

	// ErrNoJobHandle indicates a monitor or cancel call without a job
	// identifier: the job was never submitted, or submission failed.
	ErrNoJobHandle = errors.New("conductor: no job identifier to monitor")
)

// TransientError marks a remote call failure worth retrying. See the
// remote package for classification helpers.
type TransientError = remote.TransientError

// IsTransient reports whether err is a transient remote failure.
func IsTransient(err error) bool { return remote.IsTransient(err) }

// SubmissionError reports a failed submit call. Submission is never
// retried: the caller decides whether to re-invoke.
type SubmissionError struct {
	Definition string
	Queue      string
	Err        error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("conductor: submit job (definition %q, queue %q): %v", e.Definition, e.Queue, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// JobFailedError reports a job that finished in a state other than
// SUCCEEDED, carrying the service's status and reason.
type JobFailedError struct {
	Handle job.Handle
	Status job.Status
	Reason string
}

func (e *JobFailedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("conductor: job %s finished with status %s", e.Handle, e.Status)
	}
	return fmt.Sprintf("conductor: job %s finished with status %s: %s", e.Handle, e.Status, e.Reason)
}
