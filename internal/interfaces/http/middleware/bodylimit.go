package middleware

import (
	"net/http"
	"strings"

	"github.com/bizify/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimitConfig caps request bodies. PathLimits overrides MaxBytes for
// requests whose path starts with the given prefix.
type BodyLimitConfig struct {
	MaxBytes   int64
	PathLimits map[string]int64
}

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return BodyLimitWithConfig(BodyLimitConfig{MaxBytes: maxBytes})
}

// BodyLimitWithConfig returns a body limit middleware with per-path limits
func BodyLimitWithConfig(cfg BodyLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := cfg.limitFor(c.Request.URL.Path)
		if limit <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodePayloadTooLarge,
					"Request body exceeds maximum allowed size", getRequestID(c)))
			return
		}

		// Chunked bodies carry no length, so cap the reader too
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func (cfg BodyLimitConfig) limitFor(path string) int64 {
	best, limit := -1, cfg.MaxBytes
	for prefix, l := range cfg.PathLimits {
		if strings.HasPrefix(path, prefix) && len(prefix) > best {
			best, limit = len(prefix), l
		}
	}
	return limit
}
