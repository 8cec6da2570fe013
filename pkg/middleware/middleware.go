package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// RequestID adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging logs HTTP requests with structured logging
func Logging(next http.Handler) http.Handler {
	return middleware.RequestLogger(&StructuredLogger{})(next)
}

type StructuredLogger struct{}

func (l *StructuredLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &StructuredLogEntry{request: r}
}

type StructuredLogEntry struct {
	request *http.Request
}

func (l *StructuredLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	ev := logger.InfoContext(l.request.Context())
	if status >= http.StatusInternalServerError {
		ev = logger.WarnContext(l.request.Context())
	}
	ev.Str("method", l.request.Method).
		Str("path", l.request.URL.Path).
		Int("status", status).
		Int("bytes", bytes).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Str("user_agent", l.request.UserAgent()).
		Str("remote_addr", l.request.RemoteAddr).
		Msg("HTTP request completed")
}

func (l *StructuredLogEntry) Panic(v interface{}, stack []byte) {
	logger.ErrorContext(l.request.Context()).
		Interface("panic", v).
		Str("stack", string(stack)).
		Str("method", l.request.Method).
		Str("path", l.request.URL.Path).
		Msg("HTTP request panic")
}

// ServiceName adds service name to context for logging
func ServiceName(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), logger.ServiceKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Health serves /healthz. Any failing check turns the answer into a 503.
func Health(checks map[string]HealthCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/healthz" {
				next.ServeHTTP(w, r)
				return
			}
			resp := healthResponse{Status: "ok", Timestamp: time.Now().UTC().Format(time.RFC3339)}
			status := http.StatusOK
			if len(checks) > 0 {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				defer cancel()
				resp.Checks = make(map[string]string, len(checks))
				for name, check := range checks {
					if err := check(ctx); err != nil {
						resp.Checks[name] = err.Error()
						resp.Status = "degraded"
						status = http.StatusServiceUnavailable
						continue
					}
					resp.Checks[name] = "ok"
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(resp)
		})
	}
}
