// Package stats carries the engine's observability hooks. The engine emits
// fire-and-forget events at three points (transform applied, verdict
// produced, search finished); observers consume them without ever blocking
// the search.
package stats

import "time"

// TransformOutcome describes what happened when the engine applied a
// transform to a node.
type TransformOutcome string

const (
	OutcomeApplied  TransformOutcome = "applied"
	OutcomeCacheHit TransformOutcome = "cache_hit"
	OutcomeNoEdge   TransformOutcome = "no_edge"
)

// TransformEvent reports one transform application.
type TransformEvent struct {
	RunID       string
	Depth       int
	TransformID string
	Outcome     TransformOutcome
	Outputs     int
}

// CheckEvent reports one recognizer verdict.
type CheckEvent struct {
	RunID          string
	Depth          int
	Recognizer     string
	Classification string
	Confidence     float64
}

// FinishEvent reports the end of a search run.
type FinishEvent struct {
	RunID    string
	Status   string
	Results  int
	Expanded int64
	Duration time.Duration
}

// Observer receives engine events. Implementations must be safe for
// concurrent use; they are invoked from the event bus goroutine.
type Observer interface {
	OnTransformApplied(TransformEvent)
	OnCheckResult(CheckEvent)
	OnSearchFinished(FinishEvent)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) OnTransformApplied(TransformEvent) {}
func (NopObserver) OnCheckResult(CheckEvent)          {}
func (NopObserver) OnSearchFinished(FinishEvent)      {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnTransformApplied(e TransformEvent) {
	for _, o := range m {
		o.OnTransformApplied(e)
	}
}

func (m MultiObserver) OnCheckResult(e CheckEvent) {
	for _, o := range m {
		o.OnCheckResult(e)
	}
}

func (m MultiObserver) OnSearchFinished(e FinishEvent) {
	for _, o := range m {
		o.OnSearchFinished(e)
	}
}
