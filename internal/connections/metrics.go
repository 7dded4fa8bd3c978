package connections

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var wavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "connections_waves_total",
		Help: "Total number of waves by status",
	},
	[]string{"status"},
)

func recordWave(status string) {
	wavesTotal.WithLabelValues(status).Inc()
}
