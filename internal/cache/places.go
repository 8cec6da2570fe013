package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diagnosis/place-reservations/internal/domain"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type Places struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPlaces(client *redis.Client, ttl time.Duration) *Places {
	return &Places{client: client, ttl: ttl}
}

func (c *Places) Get(ctx context.Context, key string) ([]domain.Place, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out []domain.Place
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("decode cached places: %w", err)
	}
	return out, true, nil
}

func (c *Places) Set(ctx context.Context, key string, places []domain.Place) error {
	raw, err := json.Marshal(places)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
