package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads exactly one JSON value from the body into dst. Numbers
// landing in interface values stay json.Number so large integers survive.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidation(domain.MsgInvalidJSON)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidation(domain.MsgInvalidJSON)
	}
	var trailing any
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return domain.NewValidation(domain.MsgInvalidJSON)
	}
	return nil
}
