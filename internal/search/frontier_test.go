package search

import (
	"reflect"
	"sync"
	"testing"
)

func TestFrontierPopsByPriority(t *testing.T) {
	f := newFrontier()
	f.push(&node{text: "low", priority: 1})
	f.push(&node{text: "high", priority: 10})
	f.push(&node{text: "mid", priority: 5})

	var order []string
	for i := 0; i < 3; i++ {
		n, ok := f.next()
		if !ok {
			t.Fatalf("next() exhausted after %d pops", i)
		}
		order = append(order, n.text)
		f.done()
	}
	if want := []string{"high", "mid", "low"}; !reflect.DeepEqual(order, want) {
		t.Errorf("pop order = %v, want %v", order, want)
	}
	if _, ok := f.next(); ok {
		t.Error("next() should report exhaustion")
	}
}

func TestFrontierBlocksWhileWorkInFlight(t *testing.T) {
	f := newFrontier()
	f.push(&node{text: "parent", priority: 1})

	parent, ok := f.next()
	if !ok {
		t.Fatal("expected the parent node")
	}

	// A second consumer must wait for the child the in-flight expansion
	// will push, not observe exhaustion.
	got := make(chan string, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		n, ok := f.next()
		if !ok {
			got <- ""
			return
		}
		f.done()
		got <- n.text
	}()

	f.push(&node{text: "child", parent: parent, depth: 1, priority: 2})
	f.done()
	wg.Wait()
	if text := <-got; text != "child" {
		t.Errorf("waiting consumer got %q, want child", text)
	}
}

func TestFrontierStopReleasesWaiters(t *testing.T) {
	f := newFrontier()
	f.push(&node{text: "held", priority: 1})
	if _, ok := f.next(); !ok {
		t.Fatal("expected a node")
	}

	released := make(chan bool, 1)
	go func() {
		_, ok := f.next()
		released <- ok
	}()
	f.stop()
	if ok := <-released; ok {
		t.Error("stopped frontier must not hand out nodes")
	}
}

func TestVisitedSetDepthRules(t *testing.T) {
	v := newVisitedSet()
	if !v.tryVisit(42, 3) {
		t.Fatal("first visit must be admitted")
	}
	if v.tryVisit(42, 3) {
		t.Error("equal depth revisit must be rejected")
	}
	if v.tryVisit(42, 5) {
		t.Error("deeper revisit must be rejected")
	}
	if !v.tryVisit(42, 1) {
		t.Error("shallower rediscovery must be admitted")
	}
	if v.size() != 1 {
		t.Errorf("size = %d, want 1", v.size())
	}
}

func TestNodePathReconstruction(t *testing.T) {
	root := &node{text: "cipher"}
	mid := &node{text: "step1", depth: 1, transformID: "base64", parent: root}
	leaf := &node{text: "plain", depth: 2, transformID: "rot13", parent: mid}

	if got := root.path(); len(got) != 0 {
		t.Errorf("root path = %v, want empty", got)
	}
	if got, want := leaf.path(), []string{"base64", "rot13"}; !reflect.DeepEqual(got, want) {
		t.Errorf("path = %v, want %v", got, want)
	}
}

func TestAggregatorRankingAndDedup(t *testing.T) {
	a := newAggregator(2)
	a.submit(Result{Text: "alpha", Confidence: 0.7, Depth: 3})
	a.submit(Result{Text: "alpha", Confidence: 0.6, Depth: 1}) // shallower wins
	a.submit(Result{Text: "beta", Confidence: 0.9, Depth: 2})
	a.submit(Result{Text: "gamma", Confidence: 0.5, Depth: 1})

	got := a.finalize()
	if len(got) != 2 {
		t.Fatalf("got %d results, want limit 2", len(got))
	}
	if got[0].Text != "beta" || got[1].Text != "alpha" {
		t.Errorf("ranking = [%s %s], want [beta alpha]", got[0].Text, got[1].Text)
	}
	if got[1].Depth != 1 {
		t.Errorf("duplicate kept depth %d, want the shallower 1", got[1].Depth)
	}
}
