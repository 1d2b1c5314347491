package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"idsforge/pkg/requestcontext"
)

// RequestIDHeader is the inbound/outbound correlation header.
const RequestIDHeader = "X-Request-Id"

// GetRequestID retrieves the request correlation ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}

// RequestID assigns each request a correlation id, honoring one supplied by
// the caller, and echoes it in the response. It also pins the request time
// so every timestamp taken during one request agrees.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
