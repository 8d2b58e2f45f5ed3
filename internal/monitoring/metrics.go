// Package monitoring exposes Prometheus metrics and pool statistics.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes.
const (
	SearchApplied = "applied"
	SearchStale   = "stale"
	SearchFailed  = "failed"
)

// Import row outcomes.
const (
	ImportAccepted = "accepted"
	ImportRejected = "rejected"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadfinder_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadfinder_searches_total",
			Help: "Completed searches by outcome",
		},
		[]string{"outcome"},
	)

	importedRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadfinder_imported_rows_total",
			Help: "CSV rows processed by import outcome",
		},
		[]string{"outcome"},
	)

	poolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadfinder_pool_size",
			Help: "Number of leads in the session pool",
		},
	)

	poolByScore = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leadfinder_pool_leads",
			Help: "Leads in the session pool by score label",
		},
		[]string{"score"},
	)
)

// RecordHTTP records one served request. route is the matched route
// pattern, not the raw path.
func RecordHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordSearch counts a finished search.
func RecordSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

// RecordImport counts accepted and rejected import rows.
func RecordImport(accepted, rejected int) {
	importedRowsTotal.WithLabelValues(ImportAccepted).Add(float64(accepted))
	importedRowsTotal.WithLabelValues(ImportRejected).Add(float64(rejected))
}

// SetPoolSize updates the pool size gauge.
func SetPoolSize(n int) {
	poolSize.Set(float64(n))
}
