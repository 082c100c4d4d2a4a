package search

import "sync"

// visitedSet suppresses revisiting texts the search has already reached.
// Entries are keyed by content fingerprint and record the shallowest depth
// seen, so a shorter route to a known text is still admitted.
type visitedSet struct {
	mu   sync.Mutex
	seen map[uint64]int
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[uint64]int)}
}

// tryVisit claims the fingerprint at the given depth. It returns false when
// the text was already reached at the same or a shallower depth.
func (v *visitedSet) tryVisit(fingerprint uint64, depth int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if prev, ok := v.seen[fingerprint]; ok && prev <= depth {
		return false
	}
	v.seen[fingerprint] = depth
	return true
}

// size returns how many distinct texts have been claimed.
func (v *visitedSet) size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
