package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/userhub/userhub/internal/metrics"
)

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	counter := m.RequestsTotal.WithLabelValues(http.MethodGet, "/users/{id}", "200")
	if got := promtestutil.ToFloat64(counter); got != 1 {
		t.Errorf("expected 1 request recorded for /users/{id}, got %v", got)
	}
}

func TestMetrics_NilMetricsPassthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Metrics(nil)(next).ServeHTTP(rec, req)

	if !called {
		t.Error("expected next handler to be called with nil metrics")
	}
}
