package wait

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/conductor/backoff"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

// Budget bounds the work a Poller will do for one wait phase.
type Budget struct {
	// MaxAttempts is the maximum number of poll cycles per phase.
	MaxAttempts int

	// StatusRetries is the number of additional tries a single describe
	// call gets when it fails transiently (throttling, timeout) before
	// the whole cycle counts as one exhausted poll attempt.
	StatusRetries int
}

// DefaultBudget returns the polling budget used when none is
// configured: 4200 poll attempts, which at the default backoff covers
// roughly 48 hours, and 10 transient-failure retries per status check.
func DefaultBudget() Budget {
	return Budget{
		MaxAttempts:   4200,
		StatusRetries: 10,
	}
}

// Poller is the default Strategy. It polls the remote describe call
// with exponential backoff until the phase condition holds, the budget
// runs out, or ctx is done.
type Poller struct {
	client remote.Client
	budget Budget
	poll   backoff.Strategy
	retry  backoff.Strategy
	logger *slog.Logger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithBudget sets the attempt and per-call retry budget.
func WithBudget(b Budget) PollerOption {
	return func(p *Poller) { p.budget = b }
}

// WithPollBackoff sets the delay strategy between poll attempts.
func WithPollBackoff(bo backoff.Strategy) PollerOption {
	return func(p *Poller) { p.poll = bo }
}

// WithRetryBackoff sets the delay strategy between transient retries of
// a single describe call.
func WithRetryBackoff(bo backoff.Strategy) PollerOption {
	return func(p *Poller) { p.retry = bo }
}

// WithLogger sets the structured logger for the poller.
func WithLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) { p.logger = l }
}

// NewPoller creates a Poller over the given client.
func NewPoller(client remote.Client, opts ...PollerOption) *Poller {
	p := &Poller{
		client: client,
		budget: DefaultBudget(),
		poll:   backoff.DefaultPolling(),
		retry:  backoff.DefaultStatusRetry(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Strategy = (*Poller)(nil)

// WaitExists polls until the handle resolves to any known status.
func (p *Poller) WaitExists(ctx context.Context, h job.Handle) error {
	return p.pollUntil(ctx, h, ConditionJobExists, job.Status.Known)
}

// WaitRunning polls until the job has reached RUNNING or gone terminal.
func (p *Poller) WaitRunning(ctx context.Context, h job.Handle) error {
	return p.pollUntil(ctx, h, ConditionJobRunning, job.Status.RunningOrLater)
}

// WaitComplete polls until the job has reached a terminal state.
func (p *Poller) WaitComplete(ctx context.Context, h job.Handle) error {
	return p.pollUntil(ctx, h, ConditionJobComplete, job.Status.Terminal)
}

// pollUntil runs bounded describe cycles until reached(status) holds.
// A describe cycle that exhausts its transient-retry budget counts as
// one failed poll attempt and does not terminate monitoring; only a
// fatal client error, ctx cancellation, or running out of MaxAttempts
// does.
func (p *Poller) pollUntil(ctx context.Context, h job.Handle, cond Condition, reached func(job.Status) bool) error {
	var last job.Status

	for attempt := 1; attempt <= p.budget.MaxAttempts; attempt++ {
		desc, err := remote.DescribeWithRetry(ctx, p.client, h, p.budget.StatusRetries, p.retry)
		switch {
		case err == nil:
			last = desc.Status
			if reached(last) {
				p.logger.Debug("wait condition satisfied",
					slog.String("job_id", h.String()),
					slog.String("condition", string(cond)),
					slog.String("status", last.String()),
					slog.Int("attempts", attempt),
				)
				return nil
			}
			p.logger.Debug("job not yet in target phase",
				slog.String("job_id", h.String()),
				slog.String("condition", string(cond)),
				slog.String("status", last.String()),
				slog.Int("attempt", attempt),
			)
		case remote.IsTransient(err):
			// Per-call retry budget exhausted; burn one poll attempt.
			p.logger.Warn("status check exhausted transient retries",
				slog.String("job_id", h.String()),
				slog.String("condition", string(cond)),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
		default:
			return err
		}

		if attempt < p.budget.MaxAttempts {
			if err := sleep(ctx, p.poll.Delay(attempt)); err != nil {
				return err
			}
		}
	}

	return &TimeoutError{Condition: cond, Attempts: p.budget.MaxAttempts, LastStatus: last}
}

// sleep blocks for d or until ctx is done. The poll loop must yield
// between attempts rather than busy-spin.
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
