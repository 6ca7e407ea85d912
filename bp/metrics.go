package bp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// runsTotal counts finished runs by stop reason ("error" for failed runs).
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopy_bp_runs_total",
		Help: "Total belief propagation runs by outcome",
	}, []string{"reason", "mode"})

	// runIterations tracks sweeps per run.
	runIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loopy_bp_run_iterations",
		Help:    "Number of synchronous sweeps per run",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000},
	})

	// runDuration tracks wall time per run.
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "loopy_bp_run_duration_seconds",
		Help:    "Belief propagation run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// instabilityTotal counts normalization shifts above the threshold.
	instabilityTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loopy_bp_instability_warnings_total",
		Help: "Message normalization shifts above the instability threshold",
	}, []string{"direction"})
)
