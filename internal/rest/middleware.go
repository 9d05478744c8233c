package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"campuslink/internal/common"
	"campuslink/internal/ratelimit"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the identity the auth middleware attached to the
// request context.
func IdentityFrom(ctx context.Context) (*common.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*common.Identity)
	return identity, ok
}

// AuthMiddleware verifies the bearer credential on every mirror request.
func AuthMiddleware(verifier common.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := ""
			auth := r.Header.Get("Authorization")
			parts := strings.Fields(auth)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				credential = parts[1]
			}

			identity, err := verifier.Verify(r.Context(), credential)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitMiddleware applies the per-caller fixed window. An unavailable
// limiter fails open; the guard is an abuse fence, not a correctness
// mechanism.
func RateLimitMiddleware(limiter ratelimit.Limiter, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if identity, ok := IdentityFrom(r.Context()); ok {
				key = identity.ID
			}

			allowed, err := limiter.Allow(r.Context(), "http:"+key)
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
			} else if !allowed {
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware adds CORS headers
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
