package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Route request outcomes recorded in route_planner_searches_total.
// Every rejected /route request counts as an error.
const (
	outcomeFound  = "found"
	outcomeNoPath = "no_path"
	outcomeError  = "error"
)

type searchMetrics struct {
	searches *prometheus.CounterVec
	duration prometheus.Histogram
	expanded prometheus.Histogram
}

func newSearchMetrics(reg prometheus.Registerer) *searchMetrics {
	factory := promauto.With(reg)

	return &searchMetrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "route_planner_searches_total",
			Help: "Route requests by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_planner_search_duration_seconds",
			Help:    "Time spent in A* search.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
		}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_planner_expanded_intersections",
			Help:    "Intersections closed per search.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func (m *searchMetrics) observe(result Result, err error, elapsed time.Duration) {
	switch {
	case err != nil:
		m.searches.WithLabelValues(outcomeError).Inc()
		return
	case result.Found:
		m.searches.WithLabelValues(outcomeFound).Inc()
	default:
		m.searches.WithLabelValues(outcomeNoPath).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
	m.expanded.Observe(float64(result.Expanded))
}
