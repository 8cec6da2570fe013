package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdempotencyRepoImpl stores replayable responses when no Redis is configured.
type IdempotencyRepoImpl struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepo(pool *pgxpool.Pool) *IdempotencyRepoImpl {
	return &IdempotencyRepoImpl{pool: pool}
}

// Get returns "" for unknown or expired keys.
func (r *IdempotencyRepoImpl) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT response FROM idempotency_keys WHERE key_hash=$1 AND expires_at > now()`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var v string
	if err := r.pool.QueryRow(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}

func (r *IdempotencyRepoImpl) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	const q = `
INSERT INTO idempotency_keys (key_hash, response, expires_at)
VALUES ($1,$2,$3)
ON CONFLICT (key_hash) DO UPDATE SET response=EXCLUDED.response, expires_at=EXCLUDED.expires_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, key, value, time.Now().Add(ttl))
	return err
}

func (r *IdempotencyRepoImpl) CleanupExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	tag, err := r.pool.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
