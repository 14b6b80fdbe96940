package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Backend hands out cache stores backed by Redis, or by process memory when
// Redis is disabled or unreachable.
type Backend struct {
	client redis.UniversalClient
	clock  shared.Clock
	logger *zap.Logger
	memory *memoryStore
}

// Option configures Open
type Option func(*options)

type options struct {
	logger        *zap.Logger
	clock         shared.Clock
	allowFallback bool
	pingTimeout   time.Duration
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the time source for in-memory expiry
func WithClock(clock shared.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// memory. Default true.
func WithInMemoryFallback(allow bool) Option {
	return func(o *options) { o.allowFallback = allow }
}

// Open connects to Redis when cfg.Enabled.
func Open(ctx context.Context, cfg config.RedisConfig, opts ...Option) (*Backend, error) {
	o := options{
		logger:        zap.NewNop(),
		clock:         shared.SystemClock,
		allowFallback: true,
		pingTimeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Backend{clock: o.clock, logger: o.logger.Named("cache")}
	if !cfg.Enabled {
		b.logger.Info("Redis disabled, using in-memory cache")
		b.memory = newMemoryStore(o.clock)
		return b, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, o.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if !o.allowFallback {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
		}
		b.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"State is not shared between instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		b.memory = newMemoryStore(o.clock)
		return b, nil
	}

	b.logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()), zap.Int("db", cfg.DB))
	b.client = client
	return b, nil
}

// NewBackendWithClient wraps an existing client
func NewBackendWithClient(client redis.UniversalClient, clock shared.Clock) *Backend {
	if clock == nil {
		clock = shared.SystemClock
	}
	return &Backend{client: client, clock: clock, logger: zap.NewNop()}
}

// Client is the Redis client, or nil when running in memory.
func (b *Backend) Client() redis.UniversalClient {
	return b.client
}

// IdempotencyStore returns the idempotency key store
func (b *Backend) IdempotencyStore() IdempotencyStore {
	if b.client == nil {
		return b.memory
	}
	return &redisIdempotencyStore{client: b.client}
}

// SnapshotStore returns the report snapshot store
func (b *Backend) SnapshotStore() SnapshotStore {
	if b.client == nil {
		return b.memory
	}
	return &redisSnapshotStore{client: b.client}
}

// Ping checks the Redis connection. In-memory backends are always healthy.
func (b *Backend) Ping(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	return b.client.Ping(ctx).Err()
}

// Close releases the Redis connection
func (b *Backend) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}
