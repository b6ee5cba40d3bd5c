// Package metrics provides Prometheus instrumentation: counters for HTTP
// and matching traffic, histograms for latency, and gauges for live
// websocket connections.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled requests, labeled by method, route,
	// and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency in seconds.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"method", "route"})

	// MatchQueriesTotal counts matching queries by kind: "teachers",
	// "students", or "perfect".
	MatchQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_match_queries_total",
		Help: "Total number of matching queries executed",
	}, []string{"kind"})

	// NearbyQueriesTotal counts proximity searches.
	NearbyQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_nearby_queries_total",
		Help: "Total number of proximity searches executed",
	})

	// WSConnections tracks the current number of live websocket connections.
	WSConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "skillswap_ws_connections",
		Help: "Current number of active WebSocket connections",
	})

	// EventsPushedTotal counts realtime events delivered, labeled by event
	// type.
	EventsPushedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_events_pushed_total",
		Help: "Total number of realtime events pushed to clients",
	}, []string{"event"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		MatchQueriesTotal,
		NearbyQueriesTotal,
		WSConnections,
		EventsPushedTotal,
	)
}

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
