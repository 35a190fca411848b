package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/userhub/userhub/internal/metrics"
)

// Metrics returns a middleware that records Prometheus request metrics.
// A nil HTTPMetrics disables recording.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			method := r.Method

			m.InFlight.WithLabelValues(method).Inc()
			defer m.InFlight.WithLabelValues(method).Dec()

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			// The route pattern is only known after routing.
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			status := strconv.Itoa(wrapped.status)
			m.RequestsTotal.WithLabelValues(method, route, status).Inc()
			m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		})
	}
}
