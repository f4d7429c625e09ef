package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_requests_total",
			Help: "Requests answered with 429 by the per-account limiter",
		},
		[]string{"method", "route", "key_kind"},
	)

	// TrackedKeys обновляется задачей вычистки бакетов.
	TrackedKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_rate_limiter_tracked_keys",
			Help: "Buckets currently held by the per-account limiter",
		},
	)
)
