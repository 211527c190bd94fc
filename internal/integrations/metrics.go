package integrations

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// dispatchTotal counts recorded dispatch attempts by service, event type
	// and outcome status.
	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_dispatch_total",
			Help: "Integration dispatch attempts recorded in the integration log.",
		},
		[]string{"service", "event_type", "status"},
	)

	// dispatchDuration records the time spent inside the orchestrator per
	// event type.
	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "integration_dispatch_duration_seconds",
			Help:    "Duration of integration dispatches in seconds.",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"event_type"},
	)

	// logWriteFailures counts integration log rows that could not be stored.
	logWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "integration_log_write_failures_total",
			Help: "Integration log inserts that failed and were dropped.",
		},
	)
)

func init() {
	prometheus.MustRegister(dispatchTotal, dispatchDuration, logWriteFailures)
}
