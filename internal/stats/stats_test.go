package stats

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// recordingObserver counts received events.
type recordingObserver struct {
	mu         sync.Mutex
	transforms int
	checks     int
	finishes   int
}

func (r *recordingObserver) OnTransformApplied(TransformEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms++
}

func (r *recordingObserver) OnCheckResult(CheckEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks++
}

func (r *recordingObserver) OnSearchFinished(FinishEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finishes++
}

func TestBusDeliversInOrderAndDrains(t *testing.T) {
	rec := &recordingObserver{}
	bus := NewBus(rec)

	for i := 0; i < 10; i++ {
		bus.OnTransformApplied(TransformEvent{TransformID: "base64"})
		bus.OnCheckResult(CheckEvent{Recognizer: "english"})
	}
	bus.OnSearchFinished(FinishEvent{Status: "success"})
	bus.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.transforms != 10 || rec.checks != 10 || rec.finishes != 1 {
		t.Errorf("delivered %d/%d/%d events, want 10/10/1", rec.transforms, rec.checks, rec.finishes)
	}
}

func TestBusDropsAfterClose(t *testing.T) {
	bus := NewBus(&recordingObserver{})
	bus.Close()

	bus.OnTransformApplied(TransformEvent{})
	if bus.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", bus.Dropped())
	}
	// Closing twice is safe.
	bus.Close()
}

func TestSlogObserverEmitsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	o := NewSlogObserver(logger)

	o.OnTransformApplied(TransformEvent{RunID: "r1", TransformID: "hex", Outcome: OutcomeApplied, Outputs: 1})
	o.OnCheckResult(CheckEvent{RunID: "r1", Recognizer: "english", Classification: "plaintext", Confidence: 0.9})
	o.OnSearchFinished(FinishEvent{RunID: "r1", Status: "success", Results: 1, Duration: time.Second})

	out := buf.String()
	for _, want := range []string{"transform applied", "check result", "search finished", `"transform":"hex"`, `"status":"success"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestPromObserverCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPromObserver(reg)
	if err != nil {
		t.Fatal(err)
	}

	o.OnTransformApplied(TransformEvent{TransformID: "base64", Outcome: OutcomeApplied})
	o.OnTransformApplied(TransformEvent{TransformID: "base64", Outcome: OutcomeCacheHit})
	o.OnCheckResult(CheckEvent{Recognizer: "english", Classification: "gibberish"})
	o.OnSearchFinished(FinishEvent{Status: "not_found", Expanded: 3, Duration: 50 * time.Millisecond})

	if got := testutil.ToFloat64(o.transforms.WithLabelValues("base64", "applied")); got != 1 {
		t.Errorf("transforms applied = %f, want 1", got)
	}
	if got := testutil.ToFloat64(o.verdicts.WithLabelValues("english", "gibberish")); got != 1 {
		t.Errorf("verdicts = %f, want 1", got)
	}
	if got := testutil.ToFloat64(o.searches.WithLabelValues("not_found")); got != 1 {
		t.Errorf("searches = %f, want 1", got)
	}

	// Double registration must fail loudly.
	if _, err := NewPromObserver(reg); err == nil {
		t.Error("second registration should error")
	}
}

func TestMultiObserverFansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	m := MultiObserver{a, b}
	m.OnTransformApplied(TransformEvent{})
	m.OnSearchFinished(FinishEvent{})
	if a.transforms != 1 || b.transforms != 1 || a.finishes != 1 || b.finishes != 1 {
		t.Error("events not fanned out to all observers")
	}
}
