package handler

import (
	"errors"
	"net/http"

	"scholarship-portal/internal/domain/otp"
	domainProfile "scholarship-portal/internal/domain/profile"
	domainScholarship "scholarship-portal/internal/domain/scholarship"
	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	"scholarship-portal/internal/middleware"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	switch {
	case errors.As(err, &appErr):
		respondWithAppError(c, appErr)
	case errors.Is(err, domainUser.ErrDuplicateEmail),
		errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, otp.ErrOTPNotFound),
		errors.Is(err, otp.ErrOTPExpired),
		errors.Is(err, otp.ErrOTPMismatch),
		errors.Is(err, otp.ErrOTPNotVerified):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrMissingImage),
		errors.Is(err, appErrors.ErrInvalidImage),
		errors.Is(err, appErrors.ErrImageTooLarge):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainProfile.ErrStudentNotFound),
		errors.Is(err, domainProfile.ErrSponsorNotFound),
		errors.Is(err, domainScholarship.ErrScholarshipNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		logger.ForRequest(middleware.GetRequestID(c)).Error("Internal server error",
			logger.Event("internal_error"),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)

		message := "Internal server error"
		if gin.Mode() != gin.ReleaseMode {
			message = err.Error()
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, message)
	}
}

func respondWithAppError(c *gin.Context, appErr *appErrors.AppError) {
	switch appErr.Code {
	case appErrors.CodeForbidden:
		utils.ErrorResponse(c, http.StatusForbidden, appErr.Message)
	case appErrors.CodeNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, appErr.Message)
	default:
		message := appErr.Message
		if detail := utils.ValidationMessage(appErr.Err); detail != "" {
			message = detail
		}
		utils.ErrorResponse(c, http.StatusBadRequest, message)
	}
}
