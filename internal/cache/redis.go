package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore persists cache entries in Redis, letting repeated runs over
// the same inputs skip recomputation. Entries are JSON values under a
// prefixed key with a TTL.
type RedisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore builds a store over an existing client. A zero ttl keeps
// entries until Redis evicts them.
func NewRedisStore(client *backend.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "decipher:cache:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get implements Store. A malformed stored value is reported as a miss so
// the caller recomputes instead of consuming corruption.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Put implements Store. The SET is atomic on the Redis side, so readers
// never observe a partial entry.
func (s *RedisStore) Put(ctx context.Context, key string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
