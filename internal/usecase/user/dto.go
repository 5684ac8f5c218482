package user

import (
	"time"

	domainUser "scholarship-portal/internal/domain/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// AccountResponse never carries the password hash.
type AccountResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role,omitempty"`
	HasSelectedRole bool      `json:"has_selected_role"`
	CreatedAt       time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt int64            `json:"expiresAt"`
	User      *AccountResponse `json:"user"`
}

func ToAccountResponse(u *domainUser.User) *AccountResponse {
	if u == nil {
		return nil
	}
	return &AccountResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            string(u.Role),
		HasSelectedRole: u.HasSelectedRole,
		CreatedAt:       u.CreatedAt,
	}
}
