package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// APIStatsMetrics holds all metrics for the public stats endpoints.
type APIStatsMetrics struct {
	Requests *prometheus.HistogramVec
	Errors   *prometheus.CounterVec
}

var apiStatsMetrics *APIStatsMetrics

// InitAPIStats initializes and registers metrics for the stats endpoints.
func InitAPIStats() *APIStatsMetrics {
	if apiStatsMetrics != nil {
		return apiStatsMetrics
	}

	apiStatsMetrics = &APIStatsMetrics{
		Requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "api",
			Name:      "request_seconds",
			Help:      "Duration of API requests in seconds",
		}, []string{"endpoint"}),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arena",
				Subsystem: "api",
				Name:      "errors_total",
				Help:      "Total API errors by endpoint and category",
			},
			[]string{"endpoint", "category"},
		),
	}

	prometheus.MustRegister(
		apiStatsMetrics.Requests,
		apiStatsMetrics.Errors,
	)

	return apiStatsMetrics
}

// GetAPIStats returns the API stats metrics, initializing if needed.
func GetAPIStats() *APIStatsMetrics {
	if apiStatsMetrics == nil {
		return InitAPIStats()
	}
	return apiStatsMetrics
}
