// Package repo declares the store contracts the services depend on.
// The mongo and postgres subpackages implement them.
package repo

import (
	"context"

	"github.com/diagnosis/place-reservations/internal/domain"
)

type UsersRepo interface {
	// FindByUname returns domain.ErrNotFound when no account exists.
	FindByUname(ctx context.Context, uname string) (*domain.User, error)
	// Create returns domain.ErrDuplicate when uname is taken.
	Create(ctx context.Context, u *domain.User) error
}

type ReservationsRepo interface {
	// Insert stores r and returns its generated id.
	Insert(ctx context.Context, r *domain.Reservation) (string, error)
	ListByPlace(ctx context.Context, placeID string) ([]domain.Reservation, error)
	// Delete reports whether a record was removed. A malformed id yields domain.ErrInvalidID.
	Delete(ctx context.Context, id string) (bool, error)
}
