// Package metrics defines HTTP API metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of API requests by route and status",
	}, []string{"route", "status"})

	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// RecordAPIRequest records a served API request.
func RecordAPIRequest(route string, status int, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}
