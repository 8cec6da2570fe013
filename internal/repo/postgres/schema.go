package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seq keeps listing in insertion order, matching the document store.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    uname           TEXT PRIMARY KEY,
    hashed_password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS reservations (
    seq      BIGSERIAL,
    id       UUID PRIMARY KEY,
    placeid  TEXT NOT NULL,
    uname    TEXT NOT NULL,
    datetime TIMESTAMPTZ NOT NULL,
    extra    JSONB NOT NULL DEFAULT '{}'::jsonb
);
CREATE INDEX IF NOT EXISTS reservations_placeid_idx ON reservations (placeid);
CREATE TABLE IF NOT EXISTS idempotency_keys (
    key_hash   TEXT PRIMARY KEY,
    response   TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, schema)
	return err
}
