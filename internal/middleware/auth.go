package middleware

import (
	"strings"

	"scholarship-portal/internal/auth"
	"scholarship-portal/internal/logger"
	appErrors "scholarship-portal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	UserIDKey = "userID"
	EmailKey  = "email"
)

// AuthMiddleware admits requests carrying a valid bearer session token and
// attaches the token's identity to the context. A missing token is answered
// with 401, a token that fails verification with 403.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, appErrors.ErrMissingToken)
			return
		}

		identity, err := issuer.Verify(token)
		if err != nil {
			logger.ForRequest(GetRequestID(c)).Warn("Rejected session token",
				logger.Event("invalid_token"),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			abortWithError(c, appErrors.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, identity.ID)
		c.Set(EmailKey, identity.Email)

		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. The scheme
// is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUserID returns the identity attached by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
