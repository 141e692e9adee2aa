package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_upstream_requests_total",
		Help: "Requests sent to the store backend, by method and status code.",
	}, []string{"method", "status"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_upstream_request_duration_seconds",
		Help:    "Latency of requests to the store backend.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	tokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_token_refreshes_total",
		Help: "Access token refresh attempts, by outcome.",
	}, []string{"outcome"})

	gateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_gate_decisions_total",
		Help: "Route gate outcomes for protected requests.",
	}, []string{"decision"})
)

// ObserveUpstreamRequest records one backend round trip.
func ObserveUpstreamRequest(method string, status int, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	upstreamDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveTokenRefresh records a refresh attempt outcome ("ok" or "failed").
func ObserveTokenRefresh(outcome string) {
	tokenRefreshes.WithLabelValues(outcome).Inc()
}

// ObserveGateDecision records a gate outcome.
func ObserveGateDecision(decision string) {
	gateDecisions.WithLabelValues(decision).Inc()
}
