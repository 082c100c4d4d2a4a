package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// DefaultCapacity bounds the in-memory store when no capacity is given.
const DefaultCapacity = 4096

// LRUStore is a fixed-size in-memory Store evicting the least recently used
// entry when capacity is exceeded. Safe for concurrent use.
type LRUStore struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recent

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type lruEntry struct {
	key   string
	value Entry
}

// NewLRUStore creates an in-memory store holding at most capacity entries.
func NewLRUStore(capacity int) *LRUStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRUStore{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get implements Store.
func (s *LRUStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.order.MoveToFront(elem)
		s.hits.Add(1)
		return elem.Value.(*lruEntry).value, true, nil
	}
	s.misses.Add(1)
	return Entry{}, false, nil
}

// Put implements Store.
func (s *LRUStore) Put(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		elem.Value.(*lruEntry).value = entry
		s.order.MoveToFront(elem)
		return nil
	}

	s.items[key] = s.order.PushFront(&lruEntry{key: key, value: entry})
	if s.order.Len() > s.capacity {
		oldest := s.order.Back()
		if oldest != nil {
			s.order.Remove(oldest)
			delete(s.items, oldest.Value.(*lruEntry).key)
			s.evictions.Add(1)
		}
	}
	return nil
}

// Len returns the number of cached entries.
func (s *LRUStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Stats returns hit, miss, and eviction counts.
func (s *LRUStore) Stats() (hits, misses, evictions int64) {
	return s.hits.Load(), s.misses.Load(), s.evictions.Load()
}
