// Package metrics exposes Prometheus instrumentation for the studio API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studio_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Document store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "document"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_store_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation", "document"},
	)

	// Upload metrics
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_uploads_total",
			Help: "Total number of image uploads by result",
		},
		[]string{"result"}, // "stored", "rejected", "failed"
	)

	UploadsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studio_uploads_swept_total",
			Help: "Total number of orphaned uploads removed by the sweeper",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStoreOperation records a document store operation.
func RecordStoreOperation(operation, document string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, document).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, document).Inc()
	}
}

// RecordUpload counts an upload attempt. result is one of "stored",
// "rejected" or "failed".
func RecordUpload(result string) {
	UploadsTotal.WithLabelValues(result).Inc()
}

// RecordSwept counts uploads removed by the sweeper.
func RecordSwept(n int) {
	UploadsSwept.Add(float64(n))
}

// Middleware records request count, latency and in-flight requests. Routes
// are labelled by their chi pattern so path parameters do not explode the
// label space.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		APIActiveRequests.Inc()
		defer APIActiveRequests.Dec()

		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordAPIRequest(r.Method, routePattern(r), status, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
