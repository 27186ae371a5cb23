package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/bizify/backend/internal/domain/shared"
	"github.com/bizify/backend/internal/infrastructure/logger"
	"github.com/bizify/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authentication context keys and headers
const (
	OwnerIDKey    = "owner_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token to the id of the user that owns the data
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	Authenticator Authenticator
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth creates bearer-token authentication middleware
func JWTAuth(authenticator Authenticator) gin.HandlerFunc {
	return JWTAuthWithConfig(AuthConfig{Authenticator: authenticator})
}

// JWTAuthWithConfig creates bearer-token authentication middleware with custom config.
// On success the owner id is stored under OwnerIDKey and on the request logger.
func JWTAuthWithConfig(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if token == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		ownerID, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				abortUnauthorized(c, domainErr.Message)
				return
			}
			log.Error("Authentication lookup failed", zap.Error(err))
			abortWithError(c, dto.ErrCodeInternal, "An internal error occurred")
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Request = c.Request.WithContext(logger.WithOwnerID(c.Request.Context(), ownerID.String()))
		c.Next()
	}
}

// GetOwnerID returns the authenticated owner id set by JWTAuth
func GetOwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(OwnerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	abortWithError(c, dto.ErrCodeUnauthorized, message)
}

func abortWithError(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}
