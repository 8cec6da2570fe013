package middleware

import (
	"net/http"
	"time"

	"github.com/diagnosis/place-reservations/internal/http/response"
	"github.com/go-chi/httprate"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests int           // Max requests per window
	Window   time.Duration // Time window duration
	KeyFunc  httprate.KeyFunc
}

// RateLimit limits requests per key (client IP by default) and answers
// with the JSON error envelope once the budget is spent.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.RateLimit(w, "Too many requests. Try again later.")
		}),
	)
}
