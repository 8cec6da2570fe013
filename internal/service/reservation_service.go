package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/diagnosis/place-reservations/internal/repo"
	"github.com/diagnosis/place-reservations/pkg/events"
	"github.com/diagnosis/place-reservations/pkg/logger"
)

type ReservationService interface {
	Reserve(ctx context.Context, placeID, uname string, body map[string]any) (*domain.Reservation, error)
	List(ctx context.Context, placeID string) ([]domain.Reservation, error)
	// Cancel removes any reservation; ownership is not checked.
	Cancel(ctx context.Context, id, uname string) error
}

type reservationService struct {
	reservations repo.ReservationsRepo
	events       events.Publisher
	now          func() time.Time
}

func NewReservationService(reservations repo.ReservationsRepo, pub events.Publisher) ReservationService {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &reservationService{reservations: reservations, events: pub, now: time.Now}
}

func (s *reservationService) Reserve(ctx context.Context, placeID, uname string, body map[string]any) (*domain.Reservation, error) {
	res, err := domain.NewReservation(placeID, uname, body)
	if err != nil {
		return nil, err
	}
	if _, err := s.reservations.Insert(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to store reservation: %w", err)
	}

	s.publish(ctx, events.ReservationCreated, events.ReservationCreatedEvent{
		ReservationID: res.ID,
		PlaceID:       res.PlaceID,
		Uname:         res.Uname,
		DateTime:      res.DateTime,
		CreatedAt:     s.now().UTC(),
	})
	return res, nil
}

func (s *reservationService) List(ctx context.Context, placeID string) ([]domain.Reservation, error) {
	out, err := s.reservations.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if len(out) == 0 {
		return nil, domain.NewNotFound(domain.MsgReservationsAbsent)
	}
	return out, nil
}

func (s *reservationService) Cancel(ctx context.Context, id, uname string) error {
	deleted, err := s.reservations.Delete(ctx, id)
	if errors.Is(err, domain.ErrInvalidID) {
		return domain.NewValidation(domain.MsgInvalidID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if !deleted {
		return domain.NewNotFound(domain.MsgReservationAbsent)
	}

	s.publish(ctx, events.ReservationCanceled, events.ReservationCanceledEvent{
		ReservationID: id,
		CanceledBy:    uname,
		CanceledAt:    s.now().UTC(),
	})
	return nil
}

// publish never fails the request; the write already happened.
func (s *reservationService) publish(ctx context.Context, subject string, evt any) {
	if err := s.events.Publish(ctx, subject, evt); err != nil {
		logger.WarnContext(ctx).Err(err).Str("subject", subject).Msg("event publish failed")
	}
}
