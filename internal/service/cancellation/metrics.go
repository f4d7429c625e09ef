package cancellation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cancellations_total",
		Help: "Customer ride cancellations by applied consequence",
	},
	[]string{"consequence"},
)
