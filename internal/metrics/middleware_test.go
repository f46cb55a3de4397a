package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/test", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/api/test", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/test", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}

	durationCount := testutil.CollectAndCount(httpRequestDuration)
	if durationCount == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMetricsMiddleware_DifferentStatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest("GET", "/api/fail", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	badRequests := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/fail", "400"))
	if badRequests < 1 {
		t.Errorf("expected http_requests_total for 400 >= 1, got %f", badRequests)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != "unknown" {
		t.Errorf(`normalizePath("") = %q, want "unknown"`, got)
	}
	if got := normalizePath("/api/ask"); got != "/api/ask" {
		t.Errorf("normalizePath(/api/ask) = %q", got)
	}
}

func TestRegisterRAGMetrics_Idempotent(t *testing.T) {
	RegisterRAGMetrics()
	RegisterRAGMetrics() // must not panic on double registration
}
