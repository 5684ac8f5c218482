package handler

import (
	"net/http"

	"scholarship-portal/internal/middleware"
	"scholarship-portal/internal/usecase/onboarding"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OnboardingHandler struct {
	service *onboarding.Service
}

func NewOnboardingHandler(service *onboarding.Service) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *OnboardingHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/onboarding")
	{
		group.POST("/select-role", h.SelectRole)
		group.POST("/profile-status", h.ProfileStatus)
		group.POST("/profile-setup", h.SetupProfile)
	}
}

func (h *OnboardingHandler) SelectRole(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req onboarding.SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.service.SelectRole(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role selected successfully", status)
}

func (h *OnboardingHandler) ProfileStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.service.ProfileStatus(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile status retrieved successfully", status)
}

func (h *OnboardingHandler) SetupProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req onboarding.SetupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := h.service.SetupProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile setup completed", status)
}

// requireUser reads the identity set by AuthMiddleware and answers 401 when it
// is missing.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		respondWithError(c, appErrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}
