package links

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xraph/conductor/id"
)

// Persister receives link records. Implementations must tolerate being
// called concurrently.
type Persister interface {
	PersistLink(ctx context.Context, r Record) error
}

// Store is a queryable Persister: besides accepting records it can list
// the links persisted for one invocation, ordered by creation time.
type Store interface {
	Persister

	ListLinks(ctx context.Context, inv id.InvocationID) ([]Record, error)
}

// Multi fans a record out to several persisters concurrently and
// returns the first error, if any. The caller treats that error the
// same way it treats any link-persistence failure: log and move on.
func Multi(persisters ...Persister) Persister {
	return multi(persisters)
}

type multi []Persister

func (m multi) PersistLink(ctx context.Context, r Record) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range m {
		p := p
		g.Go(func() error {
			return p.PersistLink(ctx, r)
		})
	}
	return g.Wait()
}
