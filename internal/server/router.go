// Package server assembles the HTTP surface.
package server

import (
	"net/http"
	"time"

	"github.com/diagnosis/place-reservations/internal/http/handlers"
	httpmw "github.com/diagnosis/place-reservations/internal/http/middleware"
	"github.com/diagnosis/place-reservations/internal/http/response"
	"github.com/diagnosis/place-reservations/pkg/auth"
	mw "github.com/diagnosis/place-reservations/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const ServiceName = "place-reservations"

type Deps struct {
	Auth         *handlers.AuthHandler
	Places       *handlers.PlacesHandler
	Reservations *handlers.ReservationsHandler
	Tokens       *auth.TokenManager

	Metrics      *mw.Metrics
	HealthChecks map[string]mw.HealthCheck
	// Idempotency enables Idempotency-Key replay on POST /reserve when set.
	Idempotency    mw.IdempotencyStore
	IdempotencyTTL time.Duration

	CORSOrigins    []string
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName(ServiceName))
	r.Use(mw.Logging)
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(mw.Health(d.HealthChecks))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmw.RateLimit(httpmw.RateLimitConfig{
			Requests: d.AuthRateLimit,
			Window:   d.AuthRateWindow,
		}))
		r.Post("/login", d.Auth.Login)
		r.Post("/register", d.Auth.Register)
	})
	r.Delete("/logout", d.Auth.Logout)

	r.Post("/places", d.Places.Search)
	r.Get("/reservations/{placeid}", d.Reservations.List)

	r.Group(func(r chi.Router) {
		r.Use(httpmw.RequireSession(d.Tokens))
		reserve := r.With()
		if d.Idempotency != nil {
			ttl := d.IdempotencyTTL
			if ttl <= 0 {
				ttl = 24 * time.Hour
			}
			reserve = r.With(mw.IdempotencyMiddleware(d.Idempotency, ttl))
		}
		reserve.Post("/reserve/{placeid}", d.Reservations.Reserve)
		r.Delete("/cancel/{reservationid}", d.Reservations.Cancel)
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}
	return r
}
