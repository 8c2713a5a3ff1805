package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Redis stores sessions as keys with a TTL, so they are shared between
// instances and expire without a sweeper.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Create(ctx context.Context, playerID int64) (string, error) {
	token := newToken()
	if err := r.client.Set(ctx, keyPrefix+token, playerID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

func (r *Redis) Lookup(ctx context.Context, token string) (int64, error) {
	id, err := r.client.Get(ctx, keyPrefix+token).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("reading session: %w", err)
	}
	return id, nil
}

func (r *Redis) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
