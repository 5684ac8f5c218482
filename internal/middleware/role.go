package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const RoleKey = "role"

// RoleMiddleware loads the caller's current role and lets the request through
// only when it is one of allowedRoles. Roles are read from the credential
// store because tokens do not carry them and onboarding changes them.
func RoleMiddleware(users domainUser.Repository, allowedRoles ...domainUser.Role) gin.HandlerFunc {
	names := make([]string, 0, len(allowedRoles))
	for _, role := range allowedRoles {
		names = append(names, string(role)+"s")
	}
	denied := appErrors.NewAppError(appErrors.CodeForbidden,
		fmt.Sprintf("Only %s can access this resource", strings.Join(names, " or ")),
		appErrors.ErrInsufficientPermissions,
	)

	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			abortWithError(c, appErrors.ErrUnauthorized)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainUser.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			} else {
				logger.ForRequest(GetRequestID(c)).Error("Failed to load user role",
					logger.Event("role_lookup_failed"),
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				c.Set(RoleKey, string(user.Role))
				c.Next()
				return
			}
		}

		abortWithError(c, denied)
	}
}

func SponsorOnly(users domainUser.Repository) gin.HandlerFunc {
	return RoleMiddleware(users, domainUser.RoleSponsor)
}
