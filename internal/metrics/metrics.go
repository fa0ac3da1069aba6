// Package metrics exposes pipeline counters for monitoring scheduled runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourcesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscout_sources_processed_total",
			Help: "Total number of sources processed, by outcome",
		},
		[]string{"source", "status"},
	)

	EventsFound = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscout_events_found_total",
			Help: "Total number of events recognized after dedup",
		},
		[]string{"source"},
	)

	EventsUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventscout_events_upserted_total",
			Help: "Total number of event rows inserted or updated",
		},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eventscout_run_duration_seconds",
			Help:    "Duration of full pipeline runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eventscout_runs_total",
			Help: "Total number of pipeline runs, by trigger",
		},
		[]string{"trigger"},
	)
)
