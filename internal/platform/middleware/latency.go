package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idsforge/internal/platform/metrics"
)

// Latency records request duration into the shared HTTP histogram. The path
// label is the chi route pattern, not the raw URL, to keep cardinality bounded.
func Latency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			m.ObserveRequest(r.Method, path, start)
		})
	}
}
