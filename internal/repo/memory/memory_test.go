package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
)

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	r := NewUsersRepo()

	if _, err := r.FindByUname(ctx, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByUname on empty repo: %v", err)
	}
	if err := r.Create(ctx, &domain.User{Uname: "bob", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Create(ctx, &domain.User{Uname: "bob", HashedPassword: "h2"}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("second Create: %v", err)
	}
	u, err := r.FindByUname(ctx, "bob")
	if err != nil || u.HashedPassword != "h" {
		t.Fatalf("FindByUname = %#v, %v", u, err)
	}
}

func TestReservationsRepo(t *testing.T) {
	ctx := context.Background()
	r := NewReservationsRepo()
	at := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)

	first := &domain.Reservation{PlaceID: "p1", Uname: "a", DateTime: at}
	second := &domain.Reservation{PlaceID: "p1", Uname: "b", DateTime: at}
	other := &domain.Reservation{PlaceID: "p2", Uname: "c", DateTime: at}
	for _, res := range []*domain.Reservation{first, second, other} {
		if _, err := r.Insert(ctx, res); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids not assigned: %q %q", first.ID, second.ID)
	}

	list, _ := r.ListByPlace(ctx, "p1")
	if len(list) != 2 || list[0].Uname != "a" || list[1].Uname != "b" {
		t.Fatalf("ListByPlace = %#v", list)
	}

	if _, err := r.Delete(ctx, "not-an-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("Delete malformed: %v", err)
	}
	if ok, _ := r.Delete(ctx, first.ID); !ok {
		t.Fatal("Delete existing returned false")
	}
	if ok, _ := r.Delete(ctx, first.ID); ok {
		t.Fatal("Delete twice returned true")
	}
	if _, ok := r.Get(first.ID); ok {
		t.Fatal("deleted record still present")
	}
	list, _ = r.ListByPlace(ctx, "p1")
	if len(list) != 1 {
		t.Fatalf("after delete ListByPlace = %#v", list)
	}
}
