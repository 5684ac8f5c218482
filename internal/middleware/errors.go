package middleware

import (
	"errors"
	"net/http"

	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// abortWithError stops the chain with the status for a session or access
// error: 401 when the caller is unauthenticated, 403 when the token is bad
// or the caller lacks permission. An AppError answers with its Message.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, appErrors.ErrInvalidToken) || errors.Is(err, appErrors.ErrInsufficientPermissions) {
		status = http.StatusForbidden
	}

	message := err.Error()
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	utils.ErrorResponse(c, status, message)
	c.Abort()
}
