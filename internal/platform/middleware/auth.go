package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"idsforge/pkg/requestcontext"
	"idsforge/pkg/secrets"
)

// TokenValidator validates bearer tokens and yields the caller identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	Actor string
}

// APIKeyHeader carries the service-to-service credential.
const APIKeyHeader = "X-API-Key"

// RequireAuth guards mutating routes. It accepts a Bearer JWT, or an API
// key matching the configured bcrypt hash. The caller identity ends up in
// the request context as the actor.
func RequireAuth(validator TokenValidator, apiKeyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if apiKey := r.Header.Get(APIKeyHeader); apiKey != "" && apiKeyHash != "" {
				if secrets.Verify(apiKeyHash, apiKey) {
					ctx = requestcontext.WithActor(ctx, "api-key")
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				logger.WarnContext(ctx, "unauthorized access - invalid api key",
					"request_id", GetRequestID(ctx))
				unauthorized(w, "invalid API key")
				return
			}

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx))
				unauthorized(w, "missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx))
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx = requestcontext.WithActor(ctx, claims.Actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
