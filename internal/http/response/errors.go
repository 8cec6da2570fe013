package response

import (
	"net/http"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/pkg/logger"
	"github.com/goccy/go-json"
)

// ErrorResponse represents a structured JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Message is the body of plain success responses.
type Message struct {
	Msg string `json:"msg"`
	ID  string `json:"id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// Common error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

const msgInternal = "Internal server error"

// FromError maps err onto a status and error code. Errors that are not
// *domain.Error are logged and hidden behind a generic 500.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	de, ok := domain.AsError(err)
	if !ok {
		logger.ErrorContext(r.Context()).Err(err).Str("path", r.URL.Path).Msg("request failed")
		InternalError(w, msgInternal)
		return
	}
	switch de.Kind {
	case domain.KindValidation:
		BadRequest(w, de.Message)
	case domain.KindConflict:
		Conflict(w, de.Message)
	case domain.KindAuth:
		Unauthorized(w, de.Message)
	case domain.KindNotFound:
		NotFound(w, de.Message)
	case domain.KindUpstream:
		logger.ErrorContext(r.Context()).Err(de.Err).Str("path", r.URL.Path).Msg("upstream failure")
		WriteError(w, http.StatusInternalServerError, de.Message, CodeUpstream)
	default:
		InternalError(w, msgInternal)
	}
}

// Convenience functions for common errors
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message, CodeConflict)
}
