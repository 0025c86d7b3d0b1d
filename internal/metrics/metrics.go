// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painpoint_search_requests_total",
			Help: "Total number of search collaborator calls",
		},
		[]string{"provider", "status"},
	)

	Evidence = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "painpoint_evidence_total",
			Help: "Total number of pain-point evidence entries extracted",
		},
		[]string{"category"},
	)

	ResearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "painpoint_research_duration_seconds",
			Help:    "Duration of a full research request in seconds",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"mode"},
	)

	RunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "painpoint_runs_active",
			Help: "Number of research requests in flight",
		},
	)
)

// Search call outcomes.
const (
	StatusOK        = "ok"
	StatusTransient = "transient"
	StatusPermanent = "permanent"
	StatusCanceled  = "canceled"
)
