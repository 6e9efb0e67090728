package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	steps    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kstep",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kstep",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kstep",
			Name:      "kmeans_runs_total",
			Help:      "k-means runs by initialization method and outcome.",
		}, []string{"method", "outcome"}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kstep",
			Name:      "kmeans_steps",
			Help:      "Update steps per successful run.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.runs, m.steps)
	return m
}
