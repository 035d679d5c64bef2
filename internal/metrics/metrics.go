// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Gateway request counts and latencies per endpoint
//   - Basket previews and executions
//   - Orders submitted per outcome
//   - Legs skipped per reason
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Gateway metrics
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baskets_api_requests_total",
			Help: "Total number of venue API requests",
		},
		[]string{"endpoint", "status"}, // status: success, error, timeout
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baskets_api_request_duration_seconds",
			Help:    "Duration of venue API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Engine metrics
	BasketPreviews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baskets_previews_total",
			Help: "Total number of basket previews computed",
		},
	)

	BasketExecutes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baskets_executes_total",
			Help: "Total number of basket executions attempted",
		},
		[]string{"status"}, // submitted, rejected, gateway_error
	)

	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baskets_orders_submitted_total",
			Help: "Total number of per-leg orders submitted to the venue",
		},
		[]string{"status"}, // acked, failed
	)

	LegsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baskets_legs_skipped_total",
			Help: "Total number of basket legs skipped during allocation",
		},
		[]string{"reason"}, // market_unavailable, budget_too_small
	)
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
