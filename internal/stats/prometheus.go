package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver exports engine events as Prometheus metrics.
type PromObserver struct {
	transforms *prometheus.CounterVec
	verdicts   *prometheus.CounterVec
	searches   *prometheus.CounterVec
	duration   prometheus.Histogram
	expanded   prometheus.Histogram
}

// NewPromObserver registers the engine metrics with reg and returns the
// observer. A nil registerer uses the default registry.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PromObserver{
		transforms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decipher",
			Name:      "transforms_total",
			Help:      "Transform applications by transform and outcome.",
		}, []string{"transform", "outcome"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decipher",
			Name:      "verdicts_total",
			Help:      "Recognizer verdicts by classification.",
		}, []string{"recognizer", "classification"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "decipher",
			Name:      "searches_total",
			Help:      "Completed searches by outcome status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "decipher",
			Name:      "search_duration_seconds",
			Help:      "Wall time per search run.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "decipher",
			Name:      "search_expanded_nodes",
			Help:      "Nodes expanded per search run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{o.transforms, o.verdicts, o.searches, o.duration, o.expanded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// OnTransformApplied implements Observer.
func (o *PromObserver) OnTransformApplied(e TransformEvent) {
	o.transforms.WithLabelValues(e.TransformID, string(e.Outcome)).Inc()
}

// OnCheckResult implements Observer.
func (o *PromObserver) OnCheckResult(e CheckEvent) {
	o.verdicts.WithLabelValues(e.Recognizer, e.Classification).Inc()
}

// OnSearchFinished implements Observer.
func (o *PromObserver) OnSearchFinished(e FinishEvent) {
	o.searches.WithLabelValues(e.Status).Inc()
	o.duration.Observe(e.Duration.Seconds())
	o.expanded.Observe(float64(e.Expanded))
}
