package wait

import (
	"context"
	"fmt"

	"github.com/xraph/conductor/job"
)

// Condition names a wait phase. The names form the contract with
// external waiter implementations.
type Condition string

const (
	// ConditionJobExists is satisfied when the handle resolves to any
	// known status.
	ConditionJobExists Condition = "JobExists"
	// ConditionJobRunning is satisfied when the job has reached RUNNING
	// or a terminal state.
	ConditionJobRunning Condition = "JobRunning"
	// ConditionJobComplete is satisfied when the job has reached a
	// terminal state.
	ConditionJobComplete Condition = "JobComplete"
)

// Strategy blocks until a job reaches each lifecycle phase. Exactly one
// strategy is active per invocation; the controller never mixes them at
// runtime.
type Strategy interface {
	// WaitExists blocks until the handle resolves to a known status.
	WaitExists(ctx context.Context, h job.Handle) error

	// WaitRunning blocks until the job has at least started running.
	WaitRunning(ctx context.Context, h job.Handle) error

	// WaitComplete blocks until the job is terminal. Note that FAILED
	// satisfies completion: callers must classify success separately.
	WaitComplete(ctx context.Context, h job.Handle) error
}

// TimeoutError reports that polling exhausted its attempt budget before
// the target condition held. LastStatus is the last status observed,
// which may be empty if the job never resolved at all.
type TimeoutError struct {
	Condition  Condition
	Attempts   int
	LastStatus job.Status
}

func (e *TimeoutError) Error() string {
	if e.LastStatus == "" {
		return fmt.Sprintf("wait: %s not reached within %d attempts (job never resolved)", e.Condition, e.Attempts)
	}
	return fmt.Sprintf("wait: %s not reached within %d attempts (last status %s)", e.Condition, e.Attempts, e.LastStatus)
}
