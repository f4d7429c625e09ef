package routing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_gateway_retries_total",
			Help: "Total number of routing gateway calls that needed a retry",
		},
		[]string{"provider", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routing_gateway_request_duration_seconds",
			Help:    "Duration of routing provider requests including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "outcome"},
	)

	RouteCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_cache_requests_total",
			Help: "Route distance cache lookups",
		},
		[]string{"result"},
	)
)

// Observe пишет длительность и факт ретрая одного вызова провайдера.
func Observe(provider string, attempts uint64, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	GatewayRequestDuration.WithLabelValues(provider, outcome).Observe(seconds)
	if attempts > 1 {
		GatewayRetriesTotal.WithLabelValues(provider, outcome).Inc()
	}
}
