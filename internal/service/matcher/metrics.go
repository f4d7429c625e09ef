package matcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var DispatchAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_attempts_total",
		Help: "Nearest rider searches by service mode and result",
	},
	[]string{"mode", "result"},
)
