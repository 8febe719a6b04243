package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalyticsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bipulse_analytics_requests_total",
			Help: "Analytics API requests by endpoint",
		},
		[]string{"endpoint"}, // kpis|trend|categories|segments|revenue|...
	)

	DatasetsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bipulse_datasets_generated_total",
			Help: "Synthetic dataset generation runs",
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		AnalyticsRequestsTotal,
		DatasetsGeneratedTotal,
	)
}
