package handler

import (
	"net/http"

	"scholarship-portal/internal/usecase/user"
	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, login and the OTP password reset flow.
type UserHandler struct {
	service *user.Service
}

func NewUserHandler(service *user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/send-otp", h.SendOTP)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/reset-password", h.ResetPassword)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	account, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", account)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	loginResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", loginResponse)
}

func (h *UserHandler) SendOTP(c *gin.Context) {
	var req user.SendOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if err := h.service.SendOTP(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP sent to your email", nil)
}

func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req user.VerifyOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if err := h.service.VerifyOTP(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "OTP verified successfully", nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}
