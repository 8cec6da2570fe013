package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "ValidationError"
	KindConflict   ErrorKind = "ConflictError"
	KindAuth       ErrorKind = "AuthError"
	KindNotFound   ErrorKind = "NotFoundError"
	KindUpstream   ErrorKind = "UpstreamError"
)

// Error is a failure the HTTP layer knows how to present to a client.
// Anything else reaching a handler is reported as an internal error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func NewConflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NewAuth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func NewNotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }

func NewUpstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == k
}

// Store sentinels. Repositories return these so services can map them
// onto client-facing errors without importing a driver.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("malformed record id")
)

// User-facing messages.
const (
	MsgMissingCredentials = "Missing username or password"
	MsgBadCredentials     = "Username or Password wrong, please try again"
	MsgUsernameTaken      = "Username already exists"
	MsgMissingToken       = "Missing or invalid session token"
	MsgMissingCoordinates = "Missing latitude, longitude or radius"
	MsgInvalidCoordinates = "Invalid latitude or longitude"
	MsgUpstreamPlaces     = "Failed to fetch places from Overpass API"
	MsgInvalidDateTime    = "Invalid datetime format"
	MsgInvalidJSON        = "Invalid JSON format"
	MsgInvalidID          = "Invalid reservation id"
	MsgReservationsAbsent = "Reservations not found"
	MsgReservationAbsent  = "Reservation not found"
)
