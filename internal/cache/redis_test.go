package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	srv := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:", time.Minute)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)

	want := Entry{Outputs: []string{"hello", "world"}, OK: true}
	if err := s.Put(ctx, "key1", want); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, ok, err := s.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatal("entry missing after put")
	}
	if !got.OK || len(got.Outputs) != 2 || got.Outputs[0] != "hello" {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRedisStoreMiss(t *testing.T) {
	s := newTestRedis(t)
	_, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss returned error: %v", err)
	}
	if ok {
		t.Error("absent key reported present")
	}
}

func TestRedisStoreCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRedisStore(client, "test:", 0)

	if err := client.Set(ctx, "test:bad", "{not json", 0).Err(); err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.Get(ctx, "bad")
	if err != nil {
		t.Fatalf("corrupt entry returned error: %v", err)
	}
	if ok {
		t.Error("corrupt entry should be treated as a miss")
	}
}

func TestRedisStoreNegativeEntry(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)

	if err := s.Put(ctx, "edge", Entry{OK: false}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get(ctx, "edge")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.OK || len(got.Outputs) != 0 {
		t.Errorf("negative entry corrupted: %+v", got)
	}
}

func TestPathCacheOverRedis(t *testing.T) {
	ctx := context.Background()
	pc := New(newTestRedis(t))

	var calls int
	compute := func() ([]string, error) {
		calls++
		return []string{"via redis"}, nil
	}

	if _, hit, err := pc.GetOrCompute(ctx, "in", "base64", compute); err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	entry, hit, err := pc.GetOrCompute(ctx, "in", "base64", compute)
	if err != nil {
		t.Fatal(err)
	}
	if !hit || calls != 1 || entry.Outputs[0] != "via redis" {
		t.Errorf("redis-backed memoization broken: hit=%v calls=%d entry=%+v", hit, calls, entry)
	}
}
