// Package memory keeps users and reservations in process memory.
// It backs STORE_DRIVER=memory and the HTTP tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/diagnosis/place-reservations/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UsersRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUsersRepo() *UsersRepo { return &UsersRepo{users: map[string]domain.User{}} }

func (r *UsersRepo) FindByUname(_ context.Context, uname string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[uname]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UsersRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Uname]; ok {
		return domain.ErrDuplicate
	}
	r.users[u.Uname] = *u
	return nil
}

// ReservationsRepo issues ObjectID-style ids so clients see the same shape as with Mongo.
type ReservationsRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Reservation
}

func NewReservationsRepo() *ReservationsRepo {
	return &ReservationsRepo{byID: map[string]domain.Reservation{}}
}

func (r *ReservationsRepo) Insert(_ context.Context, res *domain.Reservation) (string, error) {
	id := primitive.NewObjectID().Hex()
	stored := *res
	stored.ID = id
	stored.Extra = maps.Clone(res.Extra)

	r.mu.Lock()
	r.byID[id] = stored
	r.order = append(r.order, id)
	r.mu.Unlock()

	res.ID = id
	return id, nil
}

func (r *ReservationsRepo) ListByPlace(_ context.Context, placeID string) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Reservation
	for _, id := range r.order {
		if res, ok := r.byID[id]; ok && res.PlaceID == placeID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationsRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Get returns a stored reservation by id.
func (r *ReservationsRepo) Get(id string) (domain.Reservation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[id]
	return res, ok
}
