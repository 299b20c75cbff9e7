package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/api/http/request"
	"github.com/dkarpov/taskman-server/internal/logger"
)

// TokenParser resolves user IDs from bearer tokens.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request context. Unauthenticated requests never reach the handlers.
type Authenticate struct {
	tokens TokenParser
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, logger: logger}
}

// Handle extracts the token, verifies it and attaches the resolved user ID.
// Two header conventions are accepted for backward compatibility: the custom
// X-Auth-Token header and the standard Authorization Bearer header. Both feed
// the same verifier.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("X-Auth-Token")
		if tokenString == "" {
			tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		if tokenString == "" {
			apiErr := apierrors.NewMissingToken()
			c.AbortWithStatusJSON(apiErr.Status, apiErr)
			return
		}

		userID, err := m.tokens.ParseAccessToken(tokenString)
		if err != nil || userID == uuid.Nil {
			m.logger.Debug("Authenticate middleware: token rejected", "error", err)
			apiErr := apierrors.NewInvalidToken()
			c.AbortWithStatusJSON(apiErr.Status, apiErr)
			return
		}

		c.Request = c.Request.WithContext(request.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}
