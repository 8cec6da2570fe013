package handlers

import (
	"context"
	"net/http"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/http/response"
)

type PlacesQuerier interface {
	Query(ctx context.Context, q domain.PlaceQuery) ([]domain.Place, error)
}

type PlacesHandler struct {
	svc PlacesQuerier
}

func NewPlacesHandler(svc PlacesQuerier) *PlacesHandler {
	return &PlacesHandler{svc: svc}
}

func (h *PlacesHandler) Search(w http.ResponseWriter, r *http.Request) {
	var q domain.PlaceQuery
	if err := decodeJSON(w, r, &q); err != nil {
		response.FromError(w, r, err)
		return
	}
	out, err := h.svc.Query(r.Context(), q)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}
