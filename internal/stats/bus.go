package stats

import (
	"sync"
	"sync/atomic"
)

// defaultBusBuffer is how many events the bus queues before it starts
// dropping. The search must never stall on a slow consumer.
const defaultBusBuffer = 1024

type busEvent struct {
	transform *TransformEvent
	check     *CheckEvent
	finish    *FinishEvent
}

// Bus decouples event producers from observers: Emit calls enqueue onto a
// buffered channel and a single goroutine dispatches to the registered
// observers. When the buffer is full the event is dropped and counted
// rather than blocking the caller.
type Bus struct {
	mu        sync.RWMutex
	closed    bool
	events    chan busEvent
	observers MultiObserver
	dropped   atomic.Int64
	closeOnce sync.Once
	done      chan struct{}
}

// NewBus starts the dispatch goroutine over the given observers.
func NewBus(observers ...Observer) *Bus {
	b := &Bus{
		events:    make(chan busEvent, defaultBusBuffer),
		observers: MultiObserver(observers),
		done:      make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for e := range b.events {
		switch {
		case e.transform != nil:
			b.observers.OnTransformApplied(*e.transform)
		case e.check != nil:
			b.observers.OnCheckResult(*e.check)
		case e.finish != nil:
			b.observers.OnSearchFinished(*e.finish)
		}
	}
}

func (b *Bus) emit(e busEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.dropped.Add(1)
		return
	}
	select {
	case b.events <- e:
	default:
		b.dropped.Add(1)
	}
}

// OnTransformApplied implements Observer.
func (b *Bus) OnTransformApplied(e TransformEvent) { b.emit(busEvent{transform: &e}) }

// OnCheckResult implements Observer.
func (b *Bus) OnCheckResult(e CheckEvent) { b.emit(busEvent{check: &e}) }

// OnSearchFinished implements Observer.
func (b *Bus) OnSearchFinished(e FinishEvent) { b.emit(busEvent{finish: &e}) }

// Dropped returns how many events were discarded under backpressure.
func (b *Bus) Dropped() int64 { return b.dropped.Load() }

// Close drains queued events and stops the dispatch goroutine. Emits after
// Close are dropped.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.events)
		<-b.done
	})
}
