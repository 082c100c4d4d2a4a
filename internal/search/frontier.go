package search

import (
	"container/heap"
	"sync"
)

// nodeHeap orders nodes by descending priority.
type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// frontier is the shared priority queue the workers drain. Next blocks while
// the queue is empty but another worker still holds a node, because that
// worker may push children. The frontier is exhausted once the queue is
// empty and nothing is in flight.
type frontier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   nodeHeap
	pending int
	stopped bool
}

func newFrontier() *frontier {
	f := &frontier{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// push enqueues a node unless the frontier has been stopped.
func (f *frontier) push(n *node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return
	}
	heap.Push(&f.queue, n)
	f.cond.Signal()
}

// next returns the highest-priority node, blocking until one is available.
// It returns false when the frontier is exhausted or stopped. Every true
// return must be paired with a done call.
func (f *frontier) next() (*node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queue) == 0 && f.pending > 0 && !f.stopped {
		f.cond.Wait()
	}
	if f.stopped || len(f.queue) == 0 {
		return nil, false
	}
	n := heap.Pop(&f.queue).(*node)
	f.pending++
	return n, true
}

// done marks a popped node fully expanded. When the last in-flight node
// finishes with an empty queue, blocked workers are released.
func (f *frontier) done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending--
	if f.pending == 0 && len(f.queue) == 0 {
		f.cond.Broadcast()
	}
}

// stop drains the frontier and releases all blocked workers.
func (f *frontier) stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.queue = nil
	f.cond.Broadcast()
}
