package wait

import (
	"context"
	"fmt"

	"github.com/xraph/conductor/job"
)

// ConditionWaiter is the contract for caller-supplied waiters. An
// implementation blocks until the named condition holds for the job or
// returns an error on timeout or failure. How it waits — polling,
// event subscription, push notification — is entirely its own affair.
type ConditionWaiter interface {
	WaitForCondition(ctx context.Context, cond Condition, h job.Handle) error
}

// External adapts a ConditionWaiter to the Strategy interface, mapping
// each wait phase onto its named condition.
type External struct {
	waiter ConditionWaiter
}

// NewExternal creates an External strategy over the given waiter.
func NewExternal(w ConditionWaiter) *External {
	return &External{waiter: w}
}

var _ Strategy = (*External)(nil)

// WaitExists delegates to the ConditionJobExists waiter.
func (e *External) WaitExists(ctx context.Context, h job.Handle) error {
	return e.wait(ctx, ConditionJobExists, h)
}

// WaitRunning delegates to the ConditionJobRunning waiter.
func (e *External) WaitRunning(ctx context.Context, h job.Handle) error {
	return e.wait(ctx, ConditionJobRunning, h)
}

// WaitComplete delegates to the ConditionJobComplete waiter.
func (e *External) WaitComplete(ctx context.Context, h job.Handle) error {
	return e.wait(ctx, ConditionJobComplete, h)
}

func (e *External) wait(ctx context.Context, cond Condition, h job.Handle) error {
	if err := e.waiter.WaitForCondition(ctx, cond, h); err != nil {
		return fmt.Errorf("wait: external waiter %s: %w", cond, err)
	}
	return nil
}
