package postgres

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationsRepoImpl struct{ pool *pgxpool.Pool }

func NewReservationsRepo(pool *pgxpool.Pool) *ReservationsRepoImpl {
	return &ReservationsRepoImpl{pool: pool}
}

func (r *ReservationsRepoImpl) Insert(ctx context.Context, res *domain.Reservation) (string, error) {
	const q = `INSERT INTO reservations (id, placeid, uname, datetime, extra) VALUES ($1,$2,$3,$4,$5)`

	extra, err := json.Marshal(res.Extra)
	if err != nil {
		return "", fmt.Errorf("encode extra fields: %w", err)
	}
	id := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := r.pool.Exec(ctx, q, id, res.PlaceID, res.Uname, res.DateTime, extra); err != nil {
		return "", err
	}
	res.ID = id
	return id, nil
}

func (r *ReservationsRepoImpl) ListByPlace(ctx context.Context, placeID string) ([]domain.Reservation, error) {
	const q = `SELECT id, placeid, uname, datetime, extra FROM reservations WHERE placeid=$1 ORDER BY seq`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var (
			res   domain.Reservation
			extra []byte
		)
		if err := rows.Scan(&res.ID, &res.PlaceID, &res.Uname, &res.DateTime, &extra); err != nil {
			return nil, err
		}
		if res.Extra, err = decodeExtra(extra); err != nil {
			return nil, fmt.Errorf("decode extra fields of %s: %w", res.ID, err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// decodeExtra keeps JSONB numbers as json.Number so integers come back exact.
func decodeExtra(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationsRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	const q = `DELETE FROM reservations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tag, err := r.pool.Exec(ctx, q, uid.String())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
