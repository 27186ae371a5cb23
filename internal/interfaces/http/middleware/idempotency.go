package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/logger"
	"github.com/bizify/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries a client chosen key for retry-safe writes
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	maxIdempotencyKeyLength = 255
	idempotencyReleaseKey   = "idempotency_release"
)

// ReleaseIdempotencyKey marks a request whose key should be forgotten even
// though the response is not an error status.
func ReleaseIdempotencyKey(c *gin.Context) {
	c.Set(idempotencyReleaseKey, true)
}

// IdempotencyConfig configures the idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	TTL   time.Duration
}

// Idempotency rejects a repeated Idempotency-Key with 409 while the key is
// remembered. Keys are scoped to the owner and route. Requests that fail
// release their key so the client can retry. Requests without the header
// pass through.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			abortWithError(c, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
			return
		}

		ctx := c.Request.Context()
		scoped := scopedIdempotencyKey(c, key)

		fresh, err := cfg.Store.MarkProcessed(ctx, scoped, cfg.TTL)
		if err != nil {
			// The store being down must not block imports
			logger.L(ctx).Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			logger.L(ctx).Info("Duplicate request rejected", zap.String("idempotency_key", key))
			abortWithError(c, dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest || c.GetBool(idempotencyReleaseKey) {
			if err := cfg.Store.Release(ctx, scoped); err != nil {
				logger.L(ctx).Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}

func scopedIdempotencyKey(c *gin.Context, key string) string {
	owner := "anonymous"
	if id, ok := GetOwnerID(c); ok {
		owner = id.String()
	}
	return owner + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
}
