// Package redis implements links.Store backed by Redis, for deployments
// where the UI consuming the links runs in a different process than the
// invocation that produced them. Records are msgpack-encoded and kept
// in one List per invocation, so insertion order is preserved without
// any server-side sorting.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client, redisstore.WithTTL(72*time.Hour))
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/links"
)

var _ links.Store = (*Store)(nil)

// keyPrefix prefixes all keys to avoid collisions.
const keyPrefix = "conductor:"

// linksKey returns the List key for an invocation: conductor:links:{inv}
func linksKey(inv string) string { return keyPrefix + "links:" + inv }

// record is the msgpack wire form of links.Record. IDs travel as plain
// strings; timestamps as UTC time values.
type record struct {
	ID         string     `msgpack:"id"`
	Invocation string     `msgpack:"invocation"`
	Kind       string     `msgpack:"kind"`
	Region     string     `msgpack:"region"`
	Partition  string     `msgpack:"partition"`
	Handle     string     `msgpack:"handle,omitempty"`
	Definition string     `msgpack:"definition_arn,omitempty"`
	Queue      string     `msgpack:"queue_arn,omitempty"`
	LogGroup   string     `msgpack:"log_group,omitempty"`
	LogStream  string     `msgpack:"log_stream,omitempty"`
	CreatedAt  time.Time  `msgpack:"created_at"`
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets an expiry on each invocation's link list. Zero (the
// default) keeps links forever.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// Store implements links.Store backed by Redis.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// New creates a Redis-backed link store. The caller owns the Redis
// client lifecycle.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// PersistLink appends the record to the invocation's list.
func (s *Store) PersistLink(ctx context.Context, r links.Record) error {
	data, err := msgpack.Marshal(encode(r))
	if err != nil {
		return fmt.Errorf("links/redis: marshal record: %w", err)
	}

	key := linksKey(r.Invocation.String())
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("links/redis: persist link: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("links/redis: set ttl: %w", err)
		}
	}
	return nil
}

// ListLinks returns the records persisted for inv in insertion order.
func (s *Store) ListLinks(ctx context.Context, inv id.InvocationID) ([]links.Record, error) {
	raw, err := s.client.LRange(ctx, linksKey(inv.String()), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("links/redis: list links: %w", err)
	}

	out := make([]links.Record, 0, len(raw))
	for _, item := range raw {
		var rec record
		if err := msgpack.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("links/redis: unmarshal record: %w", err)
		}
		decoded, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func encode(r links.Record) record {
	rec := record{
		ID:         r.ID.String(),
		Invocation: r.Invocation.String(),
		Kind:       string(r.Kind),
		Region:     r.Region,
		Partition:  r.Partition,
		Handle:     r.Handle.String(),
		Definition: r.DefinitionARN,
		Queue:      r.QueueARN,
		CreatedAt:  r.CreatedAt,
	}
	if r.Logs != nil {
		rec.LogGroup = r.Logs.Group
		rec.LogStream = r.Logs.Stream
	}
	return rec
}

func decode(rec record) (links.Record, error) {
	linkID, err := id.ParseLinkID(rec.ID)
	if err != nil {
		return links.Record{}, fmt.Errorf("links/redis: decode record id: %w", err)
	}
	inv, err := id.ParseInvocationID(rec.Invocation)
	if err != nil {
		return links.Record{}, fmt.Errorf("links/redis: decode invocation id: %w", err)
	}

	r := links.Record{
		ID:            linkID,
		Invocation:    inv,
		Kind:          links.Kind(rec.Kind),
		Region:        rec.Region,
		Partition:     rec.Partition,
		Handle:        job.Handle(rec.Handle),
		DefinitionARN: rec.Definition,
		QueueARN:      rec.Queue,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.LogGroup != "" || rec.LogStream != "" {
		r.Logs = &job.LogLocator{Group: rec.LogGroup, Stream: rec.LogStream}
	}
	return r, nil
}
