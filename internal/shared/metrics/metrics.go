package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RiotClientMetrics holds all metrics for outbound Riot API traffic.
type RiotClientMetrics struct {
	Requests        *prometheus.HistogramVec
	RateLimitDelays prometheus.Counter
	Errors          *prometheus.CounterVec
}

var riotClientMetrics *RiotClientMetrics

// InitRiotClient initializes and registers metrics for the Riot API client.
func InitRiotClient() *RiotClientMetrics {
	if riotClientMetrics != nil {
		return riotClientMetrics
	}

	riotClientMetrics = &RiotClientMetrics{
		Requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "riot",
			Name:      "request_seconds",
			Help:      "Duration of Riot API requests in seconds",
		}, []string{"operation"}),
		RateLimitDelays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "riot",
			Name:      "rate_limit_delays_total",
			Help:      "Total upstream 429 responses absorbed by the scheduler",
		}),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arena",
				Subsystem: "riot",
				Name:      "errors_total",
				Help:      "Total Riot API errors by category",
			},
			[]string{"category"},
		),
	}

	prometheus.MustRegister(
		riotClientMetrics.Requests,
		riotClientMetrics.RateLimitDelays,
		riotClientMetrics.Errors,
	)

	return riotClientMetrics
}

// GetRiotClient returns the Riot client metrics, initializing if needed.
func GetRiotClient() *RiotClientMetrics {
	if riotClientMetrics == nil {
		return InitRiotClient()
	}
	return riotClientMetrics
}

// MatchRefreshMetrics holds all metrics for the incremental match fetch pipeline.
type MatchRefreshMetrics struct {
	Refreshes     prometheus.Histogram
	Pages         prometheus.Counter
	MatchesCached prometheus.Counter
	MatchesNew    prometheus.Counter
	Errors        *prometheus.CounterVec
}

var matchRefreshMetrics *MatchRefreshMetrics

// InitMatchRefresh initializes and registers metrics for match refreshes.
func InitMatchRefresh() *MatchRefreshMetrics {
	if matchRefreshMetrics != nil {
		return matchRefreshMetrics
	}

	matchRefreshMetrics = &MatchRefreshMetrics{
		Refreshes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "matches",
			Name:      "refresh_seconds",
			Help:      "Duration of full incremental match refreshes in seconds",
		}),
		Pages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "matches",
			Name:      "id_pages_total",
			Help:      "Total match id pages requested from upstream",
		}),
		MatchesCached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "matches",
			Name:      "cache_hits_total",
			Help:      "Total match ids served from the cache store",
		}),
		MatchesNew: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "matches",
			Name:      "fetched_total",
			Help:      "Total new match details fetched and persisted",
		}),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "arena",
				Subsystem: "matches",
				Name:      "refresh_errors_total",
				Help:      "Total refresh errors by category",
			},
			[]string{"category"},
		),
	}

	prometheus.MustRegister(
		matchRefreshMetrics.Refreshes,
		matchRefreshMetrics.Pages,
		matchRefreshMetrics.MatchesCached,
		matchRefreshMetrics.MatchesNew,
		matchRefreshMetrics.Errors,
	)

	return matchRefreshMetrics
}

// GetMatchRefresh returns the match refresh metrics, initializing if needed.
func GetMatchRefresh() *MatchRefreshMetrics {
	if matchRefreshMetrics == nil {
		return InitMatchRefresh()
	}
	return matchRefreshMetrics
}
