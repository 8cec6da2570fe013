package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/goccy/go-json"
)

// IdempotencyStore holds captured responses keyed by hashed Idempotency-Key.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key. Keys are scoped to the caller and the request path.
func IdempotencyMiddleware(store IdempotencyStore, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, _ := r.Context().Value(logger.UserKey).(string)
			hasher := sha256.New()
			hasher.Write([]byte(user + "\x00" + r.URL.Path + "\x00" + key))
			hashedKey := fmt.Sprintf("idempotency:%x", hasher.Sum(nil))

			if existing, err := store.Get(r.Context(), hashedKey); err != nil {
				logger.WarnContext(r.Context()).Err(err).Msg("idempotency lookup failed")
			} else if existing != "" {
				var cached cachedResponse
				if err := json.Unmarshal([]byte(existing), &cached); err == nil {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("Idempotent-Replayed", "true")
					w.WriteHeader(cached.Status)
					_, _ = w.Write(cached.Body)
					return
				}
			}

			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.statusCode >= 200 && recorder.statusCode < 300 {
				raw, err := json.Marshal(cachedResponse{Status: recorder.statusCode, Body: recorder.body})
				if err == nil {
					err = store.Set(r.Context(), hashedKey, string(raw), ttl)
				}
				if err != nil {
					logger.WarnContext(r.Context()).Err(err).Msg("idempotency store failed")
				}
			}
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       []byte
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *responseRecorder) Write(body []byte) (int, error) {
	r.body = append(r.body, body...)
	return r.ResponseWriter.Write(body)
}
