package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/ratelimit"
)

// RateLimit throttles requests per client IP. When the limiter itself fails
// the request is let through.
func RateLimit(limiter ratelimit.Limiter, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientIP(r)

			allowed, retryAfter, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.TooManyRequests(w, "Too many attempts, try again later", retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
