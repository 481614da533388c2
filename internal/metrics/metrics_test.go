package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test-record", "200"))
	RecordAPIRequest("GET", "/api/test-record", http.StatusOK, 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/test-record", "200"))
	if after != before+1 {
		t.Errorf("expected counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errs := StoreOperationErrors.WithLabelValues("update", "test-doc")
	before := testutil.ToFloat64(errs)

	RecordStoreOperation("update", "test-doc", time.Millisecond, nil)
	if got := testutil.ToFloat64(errs); got != before {
		t.Errorf("success must not count as error: %v -> %v", before, got)
	}

	RecordStoreOperation("update", "test-doc", time.Millisecond, errors.New("disk full"))
	if got := testutil.ToFloat64(errs); got != before+1 {
		t.Errorf("expected one error recorded, got %v -> %v", before, got)
	}
}

func TestRecordUploadAndSwept(t *testing.T) {
	before := testutil.ToFloat64(UploadsTotal.WithLabelValues("rejected"))
	RecordUpload("rejected")
	if got := testutil.ToFloat64(UploadsTotal.WithLabelValues("rejected")); got != before+1 {
		t.Errorf("expected rejected uploads to increase, got %v -> %v", before, got)
	}

	swept := testutil.ToFloat64(UploadsSwept)
	RecordSwept(3)
	if got := testutil.ToFloat64(UploadsSwept); got != swept+3 {
		t.Errorf("expected swept to increase by 3, got %v -> %v", swept, got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/metrics-test/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := APIRequestsTotal.WithLabelValues("GET", "/api/metrics-test/{id}", "404")
	before := testutil.ToFloat64(c)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/metrics-test/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/metrics-test/def", nil))

	if got := testutil.ToFloat64(c); got != before+2 {
		t.Errorf("expected both requests under one route label, got %v -> %v", before, got)
	}
	if got := testutil.ToFloat64(APIActiveRequests); got != 0 {
		t.Errorf("expected no in-flight requests, got %v", got)
	}
}
