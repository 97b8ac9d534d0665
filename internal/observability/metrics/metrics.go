package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swift_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swift_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	importDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swift_import_duration_seconds",
		Help:    "Duration of full upstream imports",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"result"})

	importedEntities = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swift_imported_entities_total",
		Help: "Entities written by the importer, by kind",
	}, []string{"kind"})

	cascadeDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swift_cascade_deletes_total",
		Help: "Single-user cascading deletes by result",
	}, []string{"result"})

	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swift_upstream_requests_total",
		Help: "Requests made to the placeholder source, by resource and result",
	}, []string{"resource", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveImport records the duration of an import attempt with a result label.
func ObserveImport(result string, duration time.Duration) {
	importDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// AddImported counts entities of one kind written during an import.
func AddImported(kind string, n int) {
	if n <= 0 {
		return
	}
	importedEntities.WithLabelValues(kind).Add(float64(n))
}

// ObserveCascadeDelete counts a cascading user delete.
func ObserveCascadeDelete(result string) {
	cascadeDeletes.WithLabelValues(result).Inc()
}

// ObserveUpstream counts one upstream call.
func ObserveUpstream(resource, result string) {
	upstreamRequests.WithLabelValues(resource, result).Inc()
}
