package handler

import (
	"net/http"

	"scholarship-portal/internal/usecase/profile"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const profilePictureField = "profilePicture"

type ProfileHandler struct {
	service *profile.Service
}

func NewProfileHandler(service *profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes expects router to be behind AuthMiddleware.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/profile")
	{
		group.GET("", h.GetProfile)
		group.PUT("", h.UpdateProfile)
		group.POST("/picture", h.UploadPicture)
		group.DELETE("/picture", h.DeletePicture)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", resp)
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(profilePictureField)
	if err != nil {
		respondWithError(c, appErrors.ErrMissingImage)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.UploadPicture(c.Request.Context(), userID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile picture uploaded successfully", resp)
}

func (h *ProfileHandler) DeletePicture(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.service.DeletePicture(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile picture deleted successfully", nil)
}
