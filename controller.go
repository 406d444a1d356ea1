package conductor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xraph/conductor/backoff"
	"github.com/xraph/conductor/hook"
	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/links"
	"github.com/xraph/conductor/remote"
	"github.com/xraph/conductor/wait"
)

// Client is the remote scheduling-service surface the Controller
// drives. Wrap one with middleware.Wrap to add logging, metrics,
// tracing, or rate limiting.
type Client = remote.Client

// Option configures a Controller.
type Option func(*Controller) error

// Controller drives one job through its lifecycle: submit exactly
// once, monitor until terminal, classify the outcome, terminate on
// cancellation.
//
// A Controller is built per invocation. The stored handle is its only
// mutable state; everything else is read-only after New.
type Controller struct {
	client   Client
	config   Config
	strategy wait.Strategy
	hooks    *hook.Registry
	links    links.Persister
	logger   *slog.Logger
	inv      id.InvocationID

	// pending extensions registered via options before the registry
	// exists.
	pendingExts []hook.Extension

	mu     sync.Mutex
	handle job.Handle
}

// New creates a Controller over the given client.
func New(client Client, opts ...Option) (*Controller, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	c := &Controller{
		client: client,
		config: DefaultConfig(),
		logger: slog.Default(),
		inv:    id.NewInvocationID(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.hooks == nil {
		c.hooks = hook.NewRegistry(c.logger)
	}
	for _, e := range c.pendingExts {
		c.hooks.Register(e)
	}
	c.pendingExts = nil
	if c.strategy == nil {
		c.strategy = wait.NewPoller(client,
			wait.WithBudget(c.config.Budget),
			wait.WithLogger(c.logger),
		)
	}
	return c, nil
}

// WithLogger sets the structured logger for the controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) error {
		c.logger = l
		return nil
	}
}

// WithConfig replaces the controller configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) error {
		c.config = cfg
		return nil
	}
}

// WithWaitStrategy replaces the default polling strategy. Use
// wait.External to delegate waiting to service-native waiters.
func WithWaitStrategy(s wait.Strategy) Option {
	return func(c *Controller) error {
		c.strategy = s
		return nil
	}
}

// WithHooks sets the extension registry.
func WithHooks(r *hook.Registry) Option {
	return func(c *Controller) error {
		c.hooks = r
		return nil
	}
}

// WithExtensions registers lifecycle extensions.
func WithExtensions(exts ...hook.Extension) Option {
	return func(c *Controller) error {
		c.pendingExts = append(c.pendingExts, exts...)
		return nil
	}
}

// WithLinkPersister sets the console-link store. Without one, no links
// are persisted.
func WithLinkPersister(p links.Persister) Option {
	return func(c *Controller) error {
		c.links = p
		return nil
	}
}

// WithRegion sets the region console links point at.
func WithRegion(region string) Option {
	return func(c *Controller) error {
		c.config.Region = region
		return nil
	}
}

// WithPartition sets the partition console links point at.
func WithPartition(partition string) Option {
	return func(c *Controller) error {
		c.config.Partition = partition
		return nil
	}
}

// InvocationID returns the identifier correlating this controller's
// logs, hooks, and link records.
func (c *Controller) InvocationID() id.InvocationID { return c.inv }

// Handle returns the job identifier assigned at submission, or the
// zero Handle if no submission has succeeded.
func (c *Controller) Handle() job.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Submit submits the job exactly once. There is no submission retry:
// on failure the error is returned as a *SubmissionError and the
// caller decides whether to re-invoke. On success the assigned handle
// is stored for OnCancelRequested.
func (c *Controller) Submit(ctx context.Context, spec job.Spec) (job.Handle, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	c.logger.Info("submitting job",
		slog.String("name", spec.Name),
		slog.String("definition", spec.Definition),
		slog.String("queue", spec.Queue),
	)

	h, err := c.client.SubmitJob(ctx, spec)
	if err != nil {
		c.logger.Error("job submission failed",
			slog.String("definition", spec.Definition),
			slog.String("queue", spec.Queue),
			slog.String("error", err.Error()),
		)
		return "", &SubmissionError{Definition: spec.Definition, Queue: spec.Queue, Err: err}
	}

	c.mu.Lock()
	c.handle = h
	c.mu.Unlock()

	c.logger.Info("job submitted", slog.String("job_id", h.String()))
	c.hooks.EmitJobSubmitted(ctx, c.inv, spec, h)
	c.persistLink(ctx, links.JobDetails(c.inv, c.config.Region, c.config.Partition, h))
	return h, nil
}

// Monitor blocks until the job identified by h reaches a terminal
// state, then re-checks the final status against the service. The
// final check is the single source of truth for success: Monitor
// returns nil only when the service reports SUCCEEDED.
//
// Monitoring requires a handle from a successful Submit; without one
// it fails with ErrNoJobHandle.
func (c *Controller) Monitor(ctx context.Context, h job.Handle) error {
	if h.IsZero() {
		return ErrNoJobHandle
	}

	c.resolveResourceLinks(ctx, h)

	if err := c.waitPhases(ctx, h); err != nil {
		c.logger.Error("job monitoring failed",
			slog.String("job_id", h.String()),
			slog.String("error", err.Error()),
		)
		c.hooks.EmitJobFailed(ctx, c.inv, nil, err)
		return err
	}

	d, err := c.checkSuccess(ctx, h)
	if d != nil && d.Logs != nil {
		c.logger.Info("job log stream located",
			slog.String("job_id", h.String()),
			slog.String("group", d.Logs.Group),
			slog.String("stream", d.Logs.Stream),
		)
		c.persistLink(ctx, links.LogStream(c.inv, c.config.Region, c.config.Partition, h, *d.Logs))
	}
	if err != nil {
		c.logger.Error("job did not succeed",
			slog.String("job_id", h.String()),
			slog.String("error", err.Error()),
		)
		c.hooks.EmitJobFailed(ctx, c.inv, d, err)
		return err
	}

	c.logger.Info("job succeeded", slog.String("job_id", h.String()))
	c.hooks.EmitJobSucceeded(ctx, c.inv, d)
	return nil
}

// Execute submits the job and, when waitForCompletion is set, monitors
// it to completion. The handle is returned even when monitoring fails
// so the caller can inspect or terminate the job.
func (c *Controller) Execute(ctx context.Context, spec job.Spec, waitForCompletion bool) (job.Handle, error) {
	h, err := c.Submit(ctx, spec)
	if err != nil {
		return "", err
	}
	if waitForCompletion {
		if err := c.Monitor(ctx, h); err != nil {
			return h, err
		}
	}
	return h, nil
}

// Cancel asks the service to terminate the job. Termination of an
// already-terminal job is a no-op on the service side and not an
// error here.
func (c *Controller) Cancel(ctx context.Context, h job.Handle, reason string) error {
	if h.IsZero() {
		return ErrNoJobHandle
	}
	if reason == "" {
		reason = c.config.CancelReason
	}
	if err := c.client.TerminateJob(ctx, h, reason); err != nil {
		return fmt.Errorf("conductor: terminate job %s: %w", h, err)
	}
	c.logger.Info("job cancelled",
		slog.String("job_id", h.String()),
		slog.String("reason", reason),
	)
	c.hooks.EmitJobCancelled(ctx, c.inv, h, reason)
	return nil
}

// OnCancelRequested terminates the job submitted by this controller.
// It is the host-cancellation entry point: call it when the
// surrounding task is killed.
func (c *Controller) OnCancelRequested(ctx context.Context) error {
	return c.Cancel(ctx, c.Handle(), c.config.CancelReason)
}

// resolveResourceLinks describes the job to persist definition and
// queue links. The describe is advisory: early after submission the
// ARNs may not be resolvable yet, which is logged as a warning and
// never fails monitoring.
func (c *Controller) resolveResourceLinks(ctx context.Context, h job.Handle) {
	d, err := c.client.DescribeJob(ctx, h)
	if err != nil || d.DefinitionARN == "" || d.QueueARN == "" {
		c.logger.Warn("cannot resolve job definition and queue ARNs",
			slog.String("job_id", h.String()),
		)
		return
	}
	c.logger.Info("job resource ARNs resolved",
		slog.String("job_id", h.String()),
		slog.String("definition_arn", d.DefinitionARN),
		slog.String("queue_arn", d.QueueARN),
	)
	c.persistLink(ctx, links.JobDefinition(c.inv, c.config.Region, c.config.Partition, d.DefinitionARN))
	c.persistLink(ctx, links.JobQueue(c.inv, c.config.Region, c.config.Partition, d.QueueARN))
}

// waitPhases runs the strategy's phases in lifecycle order.
func (c *Controller) waitPhases(ctx context.Context, h job.Handle) error {
	if err := c.strategy.WaitExists(ctx, h); err != nil {
		return err
	}
	if err := c.strategy.WaitRunning(ctx, h); err != nil {
		return err
	}
	return c.strategy.WaitComplete(ctx, h)
}

// checkSuccess re-checks the job's final status against the service.
// Whatever a wait strategy observed along the way, this fresh describe
// decides the outcome. The returned description is non-nil whenever
// the describe itself succeeded, including for failed jobs.
func (c *Controller) checkSuccess(ctx context.Context, h job.Handle) (*job.Description, error) {
	d, err := remote.DescribeWithRetry(ctx, c.client, h, c.config.Budget.StatusRetries, backoff.DefaultStatusRetry())
	if err != nil {
		return nil, fmt.Errorf("conductor: final status check for job %s: %w", h, err)
	}
	if d.Status != job.StatusSucceeded {
		return d, &JobFailedError{Handle: h, Status: d.Status, Reason: d.Reason}
	}
	return d, nil
}

// persistLink saves a console link, logging failures. Links are
// advisory metadata and never affect the job lifecycle.
func (c *Controller) persistLink(ctx context.Context, rec links.Record) {
	if c.links == nil {
		return
	}
	if err := c.links.PersistLink(ctx, rec); err != nil {
		c.logger.Warn("link persistence failed",
			slog.String("kind", string(rec.Kind)),
			slog.String("error", err.Error()),
		)
	}
}
