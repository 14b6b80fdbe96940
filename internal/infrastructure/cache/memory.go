package cache

import (
	"context"
	"sync"
	"time"

	"github.com/retail/backend/internal/domain/shared"
)

// memoryStore backs every store interface when Redis is not in use. Expired
// entries are dropped lazily on access.
type memoryStore struct {
	mu       sync.Mutex
	clock    shared.Clock
	keys     map[string]time.Time
	snapshot *StockSnapshot
	snapExp  time.Time
}

func newMemoryStore(clock shared.Clock) *memoryStore {
	return &memoryStore{clock: clock, keys: make(map[string]time.Time)}
}

func (s *memoryStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if exp, ok := s.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.keys[key] = now.Add(ttl)
	return true, nil
}

func (s *memoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *memoryStore) SaveStock(_ context.Context, snapshot StockSnapshot, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snapshot
	s.snapExp = s.clock.Now().Add(ttl)
	return nil
}

func (s *memoryStore) LatestStock(_ context.Context) (*StockSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil || !s.clock.Now().Before(s.snapExp) {
		s.snapshot = nil
		return nil, ErrNoSnapshot
	}
	snap := *s.snapshot
	return &snap, nil
}

var (
	_ IdempotencyStore = (*memoryStore)(nil)
	_ SnapshotStore    = (*memoryStore)(nil)
)
