package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retail/backend/internal/infrastructure/cache"
	"github.com/retail/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the request header clients use to make a POST safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL is how long a used key blocks replays
const DefaultIdempotencyTTL = 24 * time.Hour

const maxIdempotencyKeyLength = 128

// Idempotency rejects a request whose Idempotency-Key was already used by the
// same user on the same route. Requests without the header pass through. A
// key whose request failed is released so the client can retry it.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key is too long",
				GetRequestID(c),
			))
			return
		}

		scoped := GetJWTUserID(c) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()
		reserved, err := store.Reserve(ctx, scoped, ttl)
		if err != nil {
			log.Error("Idempotency store unavailable, processing request anyway", zap.Error(err))
			c.Next()
			return
		}
		if !reserved {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
