package domain

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Reservation links a place, a user and a date-time. Any other fields the
// caller sent are kept in Extra and rendered alongside the fixed ones.
type Reservation struct {
	ID       string
	PlaceID  string
	Uname    string
	DateTime time.Time
	Extra    map[string]any
}

// reservedKeys are owned by the server and never copied from a request body.
var reservedKeys = map[string]struct{}{
	"id":       {},
	"_id":      {},
	"placeid":  {},
	"uname":    {},
	"datetime": {},
}

func IsReservedKey(k string) bool {
	_, ok := reservedKeys[k]
	return ok
}

// NewReservation builds a record from a request body. placeID and uname
// always win over whatever the body carries.
func NewReservation(placeID, uname string, body map[string]any) (*Reservation, error) {
	dt, err := ParseDateTime(body["datetime"])
	if err != nil {
		return nil, err
	}
	extra := make(map[string]any, len(body))
	for k, v := range body {
		if IsReservedKey(k) {
			continue
		}
		extra[k] = v
	}
	return &Reservation{
		PlaceID:  placeID,
		Uname:    uname,
		DateTime: dt,
		Extra:    extra,
	}, nil
}

func (r Reservation) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+4)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["id"] = r.ID
	out["placeid"] = r.PlaceID
	out["uname"] = r.Uname
	out["datetime"] = r.DateTime.UTC().Format(time.RFC3339Nano)
	return json.Marshal(out)
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02T15:04-0700",
	"2006-01-02 15:04-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
	"2006-01-02 15",
	"2006-01-02",
}

// ParseDateTime accepts RFC 3339 and ISO 8601 local date-times or a bare
// date. Values without a zone are UTC.
func ParseDateTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, NewValidation(MsgInvalidDateTime)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidation(MsgInvalidDateTime)
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidation(MsgInvalidDateTime)
}
