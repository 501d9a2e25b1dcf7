// Package metrics exposes Prometheus metrics of the backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gestion_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gestion_operations_total",
			Help: "Total number of entity operations",
		},
		[]string{"entity", "operation", "status"},
	)
)

// RecordOperation counts one entity operation.
func RecordOperation(entity, operation string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	operationsTotal.WithLabelValues(entity, operation, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// OtherPath labels requests whose path is not a known endpoint.
const OtherPath = "other"

// Middleware records request counts and latency. Only the known paths get
// their own label; anything else is counted under OtherPath.
func Middleware(next http.Handler, known ...string) http.Handler {
	paths := make(map[string]bool, len(known))
	for _, p := range known {
		paths[p] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		path := r.URL.Path
		if !paths[path] {
			path = OtherPath
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }
