package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/http/response"
	"github.com/diagnosis/place-reservations/pkg/auth"
	"github.com/diagnosis/place-reservations/pkg/logger"
)

type ctxKey string

const CtxIdentity ctxKey = "identity"

// TokenFromRequest prefers the session cookie and falls back to a bearer header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}

// RequireSession rejects requests without a valid session token and stores
// the token subject in the request context.
func RequireSession(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromRequest(r)
			if raw == "" {
				response.Unauthorized(w, domain.MsgMissingToken)
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.DebugContext(r.Context()).Err(err).Msg("session token rejected")
				response.Unauthorized(w, domain.MsgMissingToken)
				return
			}
			ctx := context.WithValue(r.Context(), CtxIdentity, claims.Subject)
			ctx = context.WithValue(ctx, logger.UserKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the verified username, or "" outside RequireSession.
func Identity(r *http.Request) string {
	v, _ := r.Context().Value(CtxIdentity).(string)
	return v
}
