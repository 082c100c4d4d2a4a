package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/RowanDark/decipher/internal/cache"
	"github.com/RowanDark/decipher/internal/recognize"
	"github.com/RowanDark/decipher/internal/stats"
	"github.com/RowanDark/decipher/internal/transform"
)

const (
	defaultMaxDepth   = 6
	defaultTimeBudget = 5 * time.Second
	defaultThreshold  = 0.6
	maxDefaultWorkers = 8
)

// Options tunes a search run.
type Options struct {
	// MaxDepth bounds the length of any transform chain.
	MaxDepth int
	// TimeBudget bounds the wall time of the whole run.
	TimeBudget time.Duration
	// Workers is the number of concurrent expansion goroutines.
	Workers int
	// ConfidenceThreshold is the minimum recognizer confidence for a
	// Plaintext verdict to count as a result.
	ConfidenceThreshold float64
	// TopResults is how many distinct plaintexts to collect before
	// stopping. One means stop at the first hit; AllResults keeps
	// collecting until the space is exhausted or the budget expires.
	TopResults int
}

// AllResults as TopResults collects every passing plaintext instead of
// stopping at a count.
const AllResults = -1

// DefaultOptions returns the standard run parameters.
func DefaultOptions() Options {
	return Options{
		MaxDepth:            defaultMaxDepth,
		TimeBudget:          defaultTimeBudget,
		Workers:             defaultWorkers(),
		ConfidenceThreshold: defaultThreshold,
		TopResults:          1,
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > maxDefaultWorkers {
		n = maxDefaultWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (o *Options) normalize() error {
	if o.MaxDepth == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.TimeBudget == 0 {
		o.TimeBudget = defaultTimeBudget
	}
	if o.Workers == 0 {
		o.Workers = defaultWorkers()
	}
	if o.ConfidenceThreshold == 0 {
		o.ConfidenceThreshold = defaultThreshold
	}
	if o.TopResults == 0 {
		o.TopResults = 1
	}
	switch {
	case o.MaxDepth < 1:
		return fmt.Errorf("%w: max depth must be at least 1", ErrInvalidConfig)
	case o.TimeBudget < 0:
		return fmt.Errorf("%w: time budget must be positive", ErrInvalidConfig)
	case o.Workers < 1:
		return fmt.Errorf("%w: worker count must be at least 1", ErrInvalidConfig)
	case o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1:
		return fmt.Errorf("%w: confidence threshold must be in [0,1]", ErrInvalidConfig)
	case o.TopResults < 1 && o.TopResults != AllResults:
		return fmt.Errorf("%w: top results must be at least 1, or AllResults", ErrInvalidConfig)
	}
	return nil
}

// Engine runs best-first searches over a fixed catalog and recognizer
// pipeline. It is safe for concurrent Run calls; all per-run state lives on
// the stack of Run.
type Engine struct {
	catalog  *transform.Catalog
	pipeline *recognize.Pipeline
	cache    *cache.PathCache
	observer stats.Observer
	opts     Options
}

// New validates the options and builds an engine. A nil pathCache gets an
// in-memory LRU; a nil observer discards events.
func New(catalog *transform.Catalog, pipeline *recognize.Pipeline, pathCache *cache.PathCache, observer stats.Observer, opts Options) (*Engine, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: transform catalog is empty", ErrInvalidConfig)
	}
	if pipeline == nil || pipeline.Len() == 0 {
		return nil, fmt.Errorf("%w: recognizer pipeline is empty", ErrInvalidConfig)
	}
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	if pathCache == nil {
		pathCache = cache.New(cache.NewLRUStore(cache.DefaultCapacity))
	}
	if observer == nil {
		observer = stats.NopObserver{}
	}
	return &Engine{
		catalog:  catalog,
		pipeline: pipeline,
		cache:    pathCache,
		observer: observer,
		opts:     opts,
	}, nil
}

// run ties together the per-run shared state.
type run struct {
	id        string
	engine    *Engine
	ctx       context.Context
	cancel    context.CancelFunc
	frontier  *frontier
	visited   *visitedSet
	results   *aggregator
	expanded  atomic.Int64
	satisfied atomic.Bool
}

// Run searches for plaintext reachable from input. It returns an error for
// unusable input or when the parent context is cancelled before the run has
// collected its requested results; exhausting the space or the time budget
// is reported through the Report status instead.
func (e *Engine) Run(ctx context.Context, input string) (*Report, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, e.opts.TimeBudget)
	defer cancel()

	r := &run{
		id:       uuid.NewString(),
		engine:   e,
		ctx:      runCtx,
		cancel:   cancel,
		frontier: newFrontier(),
		visited:  newVisitedSet(),
		results:  newAggregator(e.opts.TopResults),
	}

	root := &node{text: input, priority: priorityFor(input, 0, 1.0)}
	r.visited.tryVisit(cache.ContentFingerprint(input), 0)

	// The input itself may already be plaintext.
	if r.check(root) && r.satisfied.Load() {
		return r.report(start), nil
	}

	r.frontier.push(root)

	// Release the workers when the budget expires or a caller cancels.
	stopWatch := make(chan struct{})
	go func() {
		select {
		case <-runCtx.Done():
			r.frontier.stop()
		case <-stopWatch:
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.work()
		}()
	}
	wg.Wait()
	close(stopWatch)

	if errors.Is(ctx.Err(), context.Canceled) && !r.satisfied.Load() {
		return nil, ctx.Err()
	}

	return r.report(start), nil
}

func (r *run) work() {
	for {
		n, ok := r.frontier.next()
		if !ok {
			return
		}
		r.expand(n)
		r.frontier.done()
	}
}

// expand applies every applicable transform to the node and pushes the
// surviving children.
func (r *run) expand(n *node) {
	r.expanded.Add(1)
	for _, t := range r.engine.catalog.Transforms() {
		if r.ctx.Err() != nil {
			return
		}
		if !t.Applicable(n.text) {
			continue
		}

		entry, hit, err := r.engine.cache.GetOrCompute(r.ctx, n.text, t.ID(), func() ([]string, error) {
			return t.Apply(n.text)
		})
		if err != nil {
			continue
		}

		outcome := stats.OutcomeApplied
		switch {
		case !entry.OK:
			outcome = stats.OutcomeNoEdge
		case hit:
			outcome = stats.OutcomeCacheHit
		}
		r.engine.observer.OnTransformApplied(stats.TransformEvent{
			RunID:       r.id,
			Depth:       n.depth,
			TransformID: t.ID(),
			Outcome:     outcome,
			Outputs:     len(entry.Outputs),
		})
		if !entry.OK {
			continue
		}

		for _, out := range entry.Outputs {
			childDepth := n.depth + 1
			if !r.visited.tryVisit(cache.ContentFingerprint(out), childDepth) {
				continue
			}
			child := &node{
				text:        out,
				depth:       childDepth,
				transformID: t.ID(),
				parent:      n,
				priority:    priorityFor(out, childDepth, t.CostWeight()),
			}
			if r.check(child) {
				continue
			}
			if childDepth < r.engine.opts.MaxDepth {
				r.frontier.push(child)
			}
		}
	}
}

// check evaluates a node's text and records a result on a confident
// Plaintext verdict. It returns true when the node was accepted and needs
// no further expansion. A Gibberish verdict does not prune the node: the
// intermediate texts of a valid chain usually look like gibberish, so
// expansion continues and only the depth bound and the visited set limit
// growth. With the budget expired the verdict defaults to undetermined
// rather than spending time the run no longer has.
func (r *run) check(n *node) bool {
	if r.ctx.Err() != nil {
		return false
	}
	v := r.engine.pipeline.Evaluate(n.text)
	r.engine.observer.OnCheckResult(stats.CheckEvent{
		RunID:          r.id,
		Depth:          n.depth,
		Recognizer:     v.Recognizer,
		Classification: v.Classification.String(),
		Confidence:     v.Confidence,
	})

	switch v.Classification {
	case recognize.Plaintext:
		if v.Confidence < r.engine.opts.ConfidenceThreshold {
			return false
		}
		total := r.results.submit(Result{
			Path:       n.path(),
			Text:       n.text,
			Confidence: v.Confidence,
			Depth:      n.depth,
			Recognizer: v.Recognizer,
		})
		if want := r.engine.opts.TopResults; want != AllResults && total >= want {
			r.satisfied.Store(true)
			r.frontier.stop()
			r.cancel()
		}
		return true
	}
	return false
}

func (r *run) report(start time.Time) *Report {
	results := r.results.finalize()
	status := r.status(results)
	rep := &Report{
		RunID:    r.id,
		Status:   status,
		Results:  results,
		Expanded: r.expanded.Load(),
		Duration: time.Since(start),
	}
	r.engine.observer.OnSearchFinished(stats.FinishEvent{
		RunID:    rep.RunID,
		Status:   string(rep.Status),
		Results:  len(rep.Results),
		Expanded: rep.Expanded,
		Duration: rep.Duration,
	})
	return rep
}

func (r *run) status(results []Result) Status {
	timedOut := errors.Is(r.ctx.Err(), context.DeadlineExceeded) && !r.satisfied.Load()
	want := r.engine.opts.TopResults
	switch {
	case len(results) == 0 && timedOut:
		return StatusTimedOut
	case len(results) == 0:
		return StatusNotFound
	case timedOut && (want == AllResults || len(results) < want):
		return StatusPartialSuccess
	default:
		return StatusSuccess
	}
}
