package background

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "background_task_duration_seconds",
			Help:    "Duration of background task runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task"},
	)

	taskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_task_runs_total",
			Help: "Background task runs by result",
		},
		[]string{"task", "result"},
	)
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultPanic = "panic"
)
