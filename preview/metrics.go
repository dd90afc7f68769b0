package preview

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics are registered on server private registry so several servers (and
// tests) never collide on global one.
type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	recomputes  *prometheus.CounterVec
	computeTime prometheus.Histogram
	pages       prometheus.Gauge
	issues      *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bylaws",
			Subsystem: "preview",
			Name:      "requests_total",
			Help:      "Preview requests by route and status code.",
		}, []string{"route", "code"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bylaws",
			Subsystem: "preview",
			Name:      "recomputes_total",
			Help:      "Layout recomputations by outcome (computed, cached, failed).",
		}, []string{"outcome"}),
		computeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bylaws",
			Subsystem: "preview",
			Name:      "recompute_seconds",
			Help:      "Time spent loading, laying out and validating the document.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bylaws",
			Subsystem: "preview",
			Name:      "pages",
			Help:      "Total pages of the current layout.",
		}),
		issues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "bylaws",
			Subsystem: "preview",
			Name:      "issues",
			Help:      "Validation findings of the current layout by severity.",
		}, []string{"severity"}),
	}
	m.registry.MustRegister(m.requests, m.recomputes, m.computeTime, m.pages, m.issues)
	return m
}
