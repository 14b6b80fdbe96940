package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func (s *fakeIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func newIdempotentRouter(store *fakeIdempotencyStore, status *int) *gin.Engine {
	router := gin.New()
	router.POST("/orders", Idempotency(store, time.Hour, nil), func(c *gin.Context) {
		c.Status(*status)
	})
	return router
}

func post(router *gin.Engine, key string) int {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestIdempotency(t *testing.T) {
	t.Run("replayed key is rejected", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(&fakeIdempotencyStore{keys: map[string]bool{}}, &status)

		assert.Equal(t, http.StatusCreated, post(router, "k1"))
		assert.Equal(t, http.StatusConflict, post(router, "k1"))
		assert.Equal(t, http.StatusCreated, post(router, "k2"))
	})

	t.Run("requests without a key are not tracked", func(t *testing.T) {
		status := http.StatusCreated
		store := &fakeIdempotencyStore{keys: map[string]bool{}}
		router := newIdempotentRouter(store, &status)

		assert.Equal(t, http.StatusCreated, post(router, ""))
		assert.Equal(t, http.StatusCreated, post(router, ""))
		assert.Empty(t, store.keys)
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		status := http.StatusUnprocessableEntity
		router := newIdempotentRouter(&fakeIdempotencyStore{keys: map[string]bool{}}, &status)

		assert.Equal(t, http.StatusUnprocessableEntity, post(router, "k1"))
		status = http.StatusCreated
		assert.Equal(t, http.StatusCreated, post(router, "k1"))
	})

	t.Run("store outage fails open", func(t *testing.T) {
		status := http.StatusCreated
		router := newIdempotentRouter(&fakeIdempotencyStore{keys: map[string]bool{}, err: errors.New("redis down")}, &status)

		assert.Equal(t, http.StatusCreated, post(router, "k1"))
		assert.Equal(t, http.StatusCreated, post(router, "k1"))
	})
}
