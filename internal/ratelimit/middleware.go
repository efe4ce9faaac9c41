package ratelimit

import (
	"net/http"
	"strconv"

	"github.com/ridgeline-builders/ridgeline/internal/platform/httpx"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
)

// KeyFunc derives the limiter key for a request.
type KeyFunc func(*http.Request) string

// KeyByClientIP prefixes the forwarded client address, e.g. "contact:203.0.113.5".
func KeyByClientIP(prefix string) KeyFunc {
	return func(r *http.Request) string {
		return prefix + ":" + shared.ClientIP(r)
	}
}

// Middleware rejects requests over budget with a 429 and a Retry-After hint.
func Middleware(l *Limiter, policy Policy, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := l.Check(key(r), policy)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(policy.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			if !res.Allowed {
				httpx.TooManyRequests(w, res.ResetAt)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
