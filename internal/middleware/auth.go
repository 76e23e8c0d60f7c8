package middleware

import (
	"net/http"

	"github.com/eventreg/event-registration-api/internal/constants"
	"github.com/eventreg/event-registration-api/internal/response"
	"github.com/eventreg/event-registration-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAuth verifies the bearer token from the Authorization header. A
// missing header is 401; a token that fails verification is 403. On success
// the decoded identity is attached to the context.
func RequireAuth(tokens *services.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, http.StatusUnauthorized, "authorization token required")
			return
		}

		claims, err := tokens.Verify(authHeader)
		if err != nil {
			logger.Debug("token verification failed", zap.Error(err))
			response.AbortError(c, http.StatusForbidden, "invalid or expired token")
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint64)
	if !ok {
		return 0, false
	}
	return userID, true
}
