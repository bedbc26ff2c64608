package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)

	// UpstreamRequests counts outbound calls by upstream and outcome (ok, status, network, open).
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_requests_total", Help: "Outbound requests by upstream and outcome."},
		[]string{"upstream", "outcome"},
	)
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "upstream_request_duration_seconds", Help: "Outbound request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"upstream"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cache_lookups_total", Help: "Cache lookups by namespace and result."},
		[]string{"namespace", "result"},
	)

	RouteOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_outcomes_total", Help: "Route calculations by outcome kind."},
		[]string{"kind"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Timed internal operations.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
)

var regOnce sync.Once

// RegisterMetrics registers all collectors on Registry. Safe to call more than once.
func RegisterMetrics() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			UpstreamRequests,
			UpstreamDuration,
			CacheLookups,
			RouteOutcomes,
			OperationDuration,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
