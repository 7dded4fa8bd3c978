package checkin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkinsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkin_created_total",
			Help: "Total number of check-ins created",
		},
	)

	checkinsDeactivatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkin_deactivated_total",
			Help: "Total number of explicit check-in deactivations",
		},
	)
)

func recordCheckinCreated() {
	checkinsCreatedTotal.Inc()
}

func recordCheckinDeactivated() {
	checkinsDeactivatedTotal.Inc()
}
