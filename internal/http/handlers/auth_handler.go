package handlers

import (
	"net/http"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/http/response"
	"github.com/diagnosis/place-reservations/internal/service"
	"github.com/diagnosis/place-reservations/pkg/auth"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		response.FromError(w, r, err)
		return
	}
	if err := h.svc.Register(r.Context(), in); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, response.Message{Msg: "Registration successful"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.Credentials
	if err := decodeJSON(w, r, &in); err != nil {
		response.FromError(w, r, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), in)
	if err != nil {
		// Bad credentials are a 400 here, not a 401.
		if de, ok := domain.AsError(err); ok && de.Kind == domain.KindAuth {
			response.WriteError(w, http.StatusBadRequest, de.Message, response.CodeInvalidCredentials)
			return
		}
		response.FromError(w, r, err)
		return
	}
	http.SetCookie(w, sessionCookie(sess.Token, int(sess.ExpiresIn)))
	response.WriteJSON(w, http.StatusOK, response.Message{Msg: "Login Success"})
}

// Logout only clears the client cookie. Issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := sessionCookie("", -1)
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
	response.WriteJSON(w, http.StatusOK, response.Message{Msg: "Logout Success"})
}

// sessionCookie lives as long as the token it carries. A negative maxAge deletes it.
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteNoneMode,
	}
}
