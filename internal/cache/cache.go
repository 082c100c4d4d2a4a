// Package cache memoizes (input text, transform) applications so parallel
// search branches never recompute the same edge. Entries are
// content-addressed: a fingerprint of the input and the transform
// identifier keys the store, so hits are valid regardless of which branch
// or worker produced them. The backing store is pluggable; an in-memory
// LRU is the default and a Redis-backed store is available for longer-lived
// caching.
package cache

import (
	"context"
	"fmt"
	"hash/fnv"
)

// Entry is the memoized outcome of applying one transform to one input.
// A failed or empty application is recorded too, so sibling branches skip
// the edge without recomputing it.
type Entry struct {
	// Outputs holds the decoded candidates; empty when OK is false.
	Outputs []string `json:"outputs,omitempty"`
	// OK reports whether the transform produced usable output.
	OK bool `json:"ok"`
}

// Store is the pluggable persistence contract. Implementations must be safe
// for concurrent use and must publish entries atomically: a Get never
// observes a partially written entry.
type Store interface {
	// Get returns the entry for key and whether it was present.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Put stores the entry under key. Last successful publish wins.
	Put(ctx context.Context, key string, entry Entry) error
}

// Fingerprint derives the content-addressed cache key for applying a
// transform to an input text.
func Fingerprint(input, transformID string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(transformID))
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.Write([]byte(input))
	return fmt.Sprintf("%016x", h.Sum64())
}

// ContentFingerprint hashes a text alone, for cycle-suppression sets.
func ContentFingerprint(text string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return h.Sum64()
}

// PathCache wraps a Store with the get-or-compute contract used by the
// search engine.
type PathCache struct {
	store Store
}

// New builds a PathCache over the given store.
func New(store Store) *PathCache {
	return &PathCache{store: store}
}

// GetOrCompute returns the memoized entry for (input, transformID),
// computing and publishing it on a miss. Concurrent first-time requests for
// the same key may each run compute; that duplicate work is tolerated, and
// the last publish wins. A store read error is treated as a miss and the
// value is recomputed rather than propagating a possibly corrupt entry.
// The boolean reports whether the entry came from the cache.
func (c *PathCache) GetOrCompute(ctx context.Context, input, transformID string, compute func() ([]string, error)) (Entry, bool, error) {
	key := Fingerprint(input, transformID)

	if entry, ok, err := c.store.Get(ctx, key); err == nil && ok {
		return entry, true, nil
	}

	outputs, err := compute()
	entry := Entry{Outputs: outputs, OK: err == nil && len(outputs) > 0}
	if !entry.OK {
		entry.Outputs = nil
	}

	if putErr := c.store.Put(ctx, key, entry); putErr != nil {
		// Best effort: a failed publish costs a future recompute, nothing
		// else.
		return entry, false, nil
	}
	return entry, false, nil
}
