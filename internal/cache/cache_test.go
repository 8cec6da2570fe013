package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisClientBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "not-a-redis-url"); err == nil {
		t.Fatal("expected parse error")
	}
}

// Nothing listens on port 1, so every command fails fast with a dial error.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRedisClientUnreachable(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "redis://127.0.0.1:1/0"); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestStoresSurfaceErrors(t *testing.T) {
	ctx := context.Background()
	c := unreachable(t)

	places := NewPlaces(c, time.Minute)
	if _, hit, err := places.Get(ctx, "k"); err == nil || hit {
		t.Fatalf("places get: hit=%v err=%v", hit, err)
	}
	if err := places.Set(ctx, "k", nil); err == nil {
		t.Fatal("places set: expected error")
	}

	idem := NewIdempotency(c)
	if _, err := idem.Get(ctx, "k"); err == nil {
		t.Fatal("idempotency get: expected error")
	}
	if err := idem.Set(ctx, "k", "v", time.Minute); err == nil {
		t.Fatal("idempotency set: expected error")
	}
}
