// Package cache memoizes read endpoints so repeated screens do not refetch
// identical data. Entries expire after a TTL and invalidation is by key
// prefix, so a product mutation can drop every cached product list at once.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL bounds how long a cached read is served without refetching.
const DefaultTTL = 30 * time.Second

type entry struct {
	value     any
	fetchedAt time.Time
}

// Queries deduplicates concurrent fetches of the same key and remembers the
// result until the TTL lapses or the key is invalidated.
//
// Each key carries a sequence number that invalidation bumps. A fetch that
// was already in flight when the invalidation happened still returns its
// result to the caller, but the stale result is not written back, so the
// next read goes to the server.
type Queries struct {
	mu      sync.Mutex
	entries map[string]entry
	seq     map[string]uint64

	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time
}

// Option adjusts cache construction.
type Option func(*Queries)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queries) {
		if ttl > 0 {
			q.ttl = ttl
		}
	}
}

// WithClock swaps the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(q *Queries) {
		if now != nil {
			q.now = now
		}
	}
}

func New(opts ...Option) *Queries {
	q := &Queries{
		entries: make(map[string]entry),
		seq:     make(map[string]uint64),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Key joins parts into a cache key. Empty parts are kept so positional
// filters stay distinguishable.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get returns the cached value for key, fetching it when absent or stale.
// Concurrent callers for the same key share one fetch.
func (q *Queries) Get(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	q.mu.Lock()
	if cached, ok := q.entries[key]; ok && q.now().Sub(cached.fetchedAt) < q.ttl {
		q.mu.Unlock()
		return cached.value, nil
	}
	startSeq := q.seq[key]
	// Materialize the sequence before fetching so an invalidation during the
	// flight finds the key and can bump it, even on the key's first fetch.
	q.seq[key] = startSeq
	q.mu.Unlock()

	value, err, _ := q.group.Do(key, func() (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	if q.seq[key] == startSeq {
		q.entries[key] = entry{value: value, fetchedAt: q.now()}
	}
	q.mu.Unlock()
	return value, nil
}

// Invalidate drops every entry whose key starts with one of the prefixes
// and bumps its sequence so in-flight fetches for it are not written back.
func (q *Queries) Invalidate(prefixes ...string) {
	if q == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	for key := range q.entries {
		if hasAnyPrefix(key, prefixes) {
			delete(q.entries, key)
		}
	}
	// Every fetched key has a sequence, including in-flight fetches that have
	// no entry yet; bumping it keeps their results from being written back.
	for key := range q.seq {
		if hasAnyPrefix(key, prefixes) {
			q.seq[key]++
		}
	}
}

// Reset empties the cache entirely, used at logout.
func (q *Queries) Reset() {
	if q == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = make(map[string]entry)
	for key := range q.seq {
		q.seq[key]++
	}
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Fetch is the typed entry point over Queries.Get.
func Fetch[T any](ctx context.Context, q *Queries, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if q == nil {
		return fetch(ctx)
	}
	value, err := q.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		// Another call site cached a different type under the same key;
		// serve this caller with a direct fetch instead of a zero value.
		return fetch(ctx)
	}
	return typed, nil
}
