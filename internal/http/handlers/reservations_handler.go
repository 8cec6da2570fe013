package handlers

import (
	"net/http"

	"github.com/diagnosis/place-reservations/internal/http/middleware"
	"github.com/diagnosis/place-reservations/internal/http/response"
	"github.com/diagnosis/place-reservations/internal/service"
	"github.com/go-chi/chi/v5"
)

type ReservationsHandler struct {
	svc service.ReservationService
}

func NewReservationsHandler(svc service.ReservationService) *ReservationsHandler {
	return &ReservationsHandler{svc: svc}
}

func (h *ReservationsHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context(), chi.URLParam(r, "placeid"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}

// Reserve must run behind middleware.RequireSession.
func (h *ReservationsHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeJSON(w, r, &body); err != nil {
		response.FromError(w, r, err)
		return
	}
	res, err := h.svc.Reserve(r.Context(), chi.URLParam(r, "placeid"), middleware.Identity(r), body)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, response.Message{Msg: "Reservation successful", ID: res.ID})
}

func (h *ReservationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "reservationid"), middleware.Identity(r)); err != nil {
		response.FromError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.Message{Msg: "Cancel Reservation succeed"})
}
