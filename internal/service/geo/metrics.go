package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RoutingFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "routing_fallback_total",
		Help: "Road distance requests answered with haversine fallback",
	},
	[]string{"reason"},
)
