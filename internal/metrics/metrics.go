// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationsTotal counts simulation requests by outcome:
	// "ok", "rejected" (invalid parameters) or "error".
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gbm_simulations_total",
		Help: "Number of simulation requests processed, by outcome.",
	}, []string{"status"})

	// SimulationDuration observes wall time per simulation call,
	// batch or single.
	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gbm_simulation_duration_seconds",
		Help:    "Wall time spent simulating paths.",
		Buckets: prometheus.DefBuckets,
	})

	// SimulationSteps observes requested discretization sizes.
	SimulationSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gbm_simulation_steps",
		Help:    "Requested step counts per simulation.",
		Buckets: prometheus.ExponentialBuckets(1, 10, 7),
	})
)
