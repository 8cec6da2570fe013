package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UsersRepoImpl struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepoImpl { return &UsersRepoImpl{pool: pool} }

func (r *UsersRepoImpl) Create(ctx context.Context, u *domain.User) error {
	const q = `INSERT INTO users (uname, hashed_password) VALUES ($1,$2)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := r.pool.Exec(ctx, q, u.Uname, u.HashedPassword); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UsersRepoImpl) FindByUname(ctx context.Context, uname string) (*domain.User, error) {
	const q = `SELECT uname, hashed_password FROM users WHERE uname=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, uname).Scan(&u.Uname, &u.HashedPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
