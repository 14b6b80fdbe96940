package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/domain/shared"
)

// StockSnapshotKey holds the most recent scheduled stock report.
const StockSnapshotKey = "report:stock:latest"

// ErrNoSnapshot is returned when no snapshot has been stored or it expired.
var ErrNoSnapshot = shared.ErrNotFound.WithMessage("No stock report snapshot available")

// StockSnapshot is a stored stock report
type StockSnapshot = report.Envelope[report.StockReport]

// SnapshotStore keeps the latest precomputed stock report
type SnapshotStore interface {
	SaveStock(ctx context.Context, snapshot StockSnapshot, ttl time.Duration) error
	LatestStock(ctx context.Context) (*StockSnapshot, error)
}

type redisSnapshotStore struct {
	client redis.UniversalClient
}

func (s *redisSnapshotStore) SaveStock(ctx context.Context, snapshot StockSnapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode stock snapshot: %w", err)
	}
	if err := s.client.Set(ctx, StockSnapshotKey, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store stock snapshot: %w", err)
	}
	return nil
}

func (s *redisSnapshotStore) LatestStock(ctx context.Context) (*StockSnapshot, error) {
	payload, err := s.client.Get(ctx, StockSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stock snapshot: %w", err)
	}
	var snapshot StockSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode stock snapshot: %w", err)
	}
	return &snapshot, nil
}
