package search

import (
	"sort"
	"sync"
)

// aggregator collects accepted results across workers. Duplicate plaintexts
// reached over different chains collapse to one result, keeping the
// shallowest chain and, at equal depth, the highest confidence.
type aggregator struct {
	mu      sync.Mutex
	byText  map[string]Result
	wantAll int
}

func newAggregator(limit int) *aggregator {
	return &aggregator{byText: make(map[string]Result), wantAll: limit}
}

// submit records a result. It returns the number of distinct plaintexts
// collected so far so callers can decide whether to keep searching.
func (a *aggregator) submit(r Result) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev, ok := a.byText[r.Text]
	switch {
	case !ok:
		a.byText[r.Text] = r
	case r.Depth < prev.Depth:
		a.byText[r.Text] = r
	case r.Depth == prev.Depth && r.Confidence > prev.Confidence:
		a.byText[r.Text] = r
	}
	return len(a.byText)
}

// finalize returns the collected results ordered by confidence then depth,
// truncated to the configured limit.
func (a *aggregator) finalize() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Result, 0, len(a.byText))
	for _, r := range a.byText {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].Text < out[j].Text
	})
	if a.wantAll > 0 && len(out) > a.wantAll {
		out = out[:a.wantAll]
	}
	return out
}
