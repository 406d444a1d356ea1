// Package memory provides a fully in-memory links.Store. Safe for
// concurrent access. Intended for unit testing and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/links"
)

var _ links.Store = (*Store)(nil)

// Store keeps link records grouped by invocation.
type Store struct {
	mu      sync.RWMutex
	records map[string][]links.Record
}

// New returns a new empty Store.
func New() *Store {
	return &Store{records: make(map[string][]links.Record)}
}

// PersistLink stores a copy of the record.
func (s *Store) PersistLink(_ context.Context, r links.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Invocation.String()
	s.records[key] = append(s.records[key], r)
	return nil
}

// ListLinks returns the records persisted for inv, ordered by creation
// time. Link IDs are K-sortable, so ties break deterministically.
func (s *Store) ListLinks(_ context.Context, inv id.InvocationID) ([]links.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.records[inv.String()]
	out := make([]links.Record, len(stored))
	copy(out, stored)

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
