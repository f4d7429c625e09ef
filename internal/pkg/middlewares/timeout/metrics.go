package timeout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RequestTimeoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_request_timeouts_total",
		Help: "Requests whose context deadline expired before the handler returned",
	},
	[]string{"method", "route"},
)
