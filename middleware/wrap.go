package middleware

import (
	"context"

	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

// Wrap decorates a remote.Client so every call runs through the given
// middleware. With no middleware the client is returned unchanged.
func Wrap(c remote.Client, mws ...Middleware) remote.Client {
	if len(mws) == 0 {
		return c
	}
	return &wrappedClient{next: c, mw: Chain(mws...)}
}

type wrappedClient struct {
	next remote.Client
	mw   Middleware
}

var _ remote.Client = (*wrappedClient)(nil)

func (w *wrappedClient) SubmitJob(ctx context.Context, spec job.Spec) (job.Handle, error) {
	var h job.Handle
	err := w.mw(ctx, "", OpSubmitJob, func(ctx context.Context) error {
		var callErr error
		h, callErr = w.next.SubmitJob(ctx, spec)
		return callErr
	})
	return h, err
}

func (w *wrappedClient) DescribeJob(ctx context.Context, h job.Handle) (*job.Description, error) {
	var desc *job.Description
	err := w.mw(ctx, h, OpDescribeJob, func(ctx context.Context) error {
		var callErr error
		desc, callErr = w.next.DescribeJob(ctx, h)
		return callErr
	})
	return desc, err
}

func (w *wrappedClient) TerminateJob(ctx context.Context, h job.Handle, reason string) error {
	return w.mw(ctx, h, OpTerminateJob, func(ctx context.Context) error {
		return w.next.TerminateJob(ctx, h, reason)
	})
}
