package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Realtime events handed to publishers",
	},
	[]string{"sink", "event", "outcome"},
)
