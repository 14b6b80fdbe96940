package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotencyStore remembers request keys so a retried write is applied once.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key was already claimed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so a failed request can be retried.
	Release(ctx context.Context, key string) error
}

type redisIdempotencyStore struct {
	client redis.UniversalClient
}

func (s *redisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	// SETNX makes the claim atomic across instances
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
