package ride

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RidesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rides_created_total",
		Help: "Total number of ride requests by dispatch outcome",
	},
	[]string{"outcome"}, // assigned, unassigned, scheduled
)
