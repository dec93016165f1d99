package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Upstream catalog metrics
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_upstream_requests_total",
			Help: "Total number of requests made to the show catalog.",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "showfinder_upstream_request_duration_seconds",
			Help:    "Latency of show catalog requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Live session metrics
var (
	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "showfinder_live_sessions",
			Help: "Number of connected browser sessions.",
		},
	)

	LiveEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_live_events_total",
			Help: "Total number of browser events dispatched, by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	StaleResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "showfinder_stale_results_total",
			Help: "Results dropped because a newer request superseded them.",
		},
		[]string{"pipeline"},
	)
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

func init() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		LiveSessions,
		LiveEventsTotal,
		StaleResultsTotal,
	)
}
