package awsbatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"

	"github.com/xraph/conductor/compute"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

// API is the subset of the AWS Batch SDK client the adapter uses.
// *batch.Client satisfies it; tests substitute fakes.
type API interface {
	SubmitJob(ctx context.Context, in *batch.SubmitJobInput, optFns ...func(*batch.Options)) (*batch.SubmitJobOutput, error)
	DescribeJobs(ctx context.Context, in *batch.DescribeJobsInput, optFns ...func(*batch.Options)) (*batch.DescribeJobsOutput, error)
	TerminateJob(ctx context.Context, in *batch.TerminateJobInput, optFns ...func(*batch.Options)) (*batch.TerminateJobOutput, error)
	CreateComputeEnvironment(ctx context.Context, in *batch.CreateComputeEnvironmentInput, optFns ...func(*batch.Options)) (*batch.CreateComputeEnvironmentOutput, error)
}

// Compile-time interface checks.
var (
	_ remote.Client             = (*Client)(nil)
	_ compute.EnvironmentClient = (*Client)(nil)
)

// Client implements remote.Client and compute.EnvironmentClient against
// AWS Batch.
type Client struct {
	api    API
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a Client over the given API.
func New(api API, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a Client from a resolved aws.Config.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	return New(batch.NewFromConfig(cfg), opts...)
}

// SubmitJob implements remote.Client. Throttling and timeout failures
// are reported as transient; everything else is fatal.
func (c *Client) SubmitJob(ctx context.Context, spec job.Spec) (job.Handle, error) {
	out, err := c.api.SubmitJob(ctx, submitInput(spec))
	if err != nil {
		return "", classify("SubmitJob", err)
	}
	h := job.Handle(aws.ToString(out.JobId))
	if h.IsZero() {
		return "", fmt.Errorf("awsbatch: submit response carries no job id for %q", spec.Name)
	}
	c.logger.Debug("batch job submitted",
		slog.String("job_id", h.String()),
		slog.String("name", aws.ToString(out.JobName)),
	)
	return h, nil
}

// DescribeJob implements remote.Client. An empty describe result for a
// known handle is reported as transient: Batch reads are eventually
// consistent right after submission.
func (c *Client) DescribeJob(ctx context.Context, h job.Handle) (*job.Description, error) {
	out, err := c.api.DescribeJobs(ctx, &batch.DescribeJobsInput{
		Jobs: []string{h.String()},
	})
	if err != nil {
		return nil, classify("DescribeJob", err)
	}
	if len(out.Jobs) == 0 {
		return nil, &remote.TransientError{
			Op:  "DescribeJob",
			Err: fmt.Errorf("awsbatch: job %s not yet visible", h),
		}
	}
	return description(out.Jobs[0]), nil
}

// TerminateJob implements remote.Client.
func (c *Client) TerminateJob(ctx context.Context, h job.Handle, reason string) error {
	_, err := c.api.TerminateJob(ctx, &batch.TerminateJobInput{
		JobId:  aws.String(h.String()),
		Reason: aws.String(reason),
	})
	if err != nil {
		return classify("TerminateJob", err)
	}
	c.logger.Info("batch job terminated",
		slog.String("job_id", h.String()),
		slog.String("reason", reason),
	)
	return nil
}

// CreateEnvironment implements compute.EnvironmentClient.
func (c *Client) CreateEnvironment(ctx context.Context, spec compute.EnvironmentSpec) error {
	_, err := c.api.CreateComputeEnvironment(ctx, environmentInput(spec))
	if err != nil {
		return classify("CreateComputeEnvironment", err)
	}
	return nil
}
