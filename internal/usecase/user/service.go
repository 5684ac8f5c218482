package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scholarship-portal/internal/auth"
	"scholarship-portal/internal/domain/notification"
	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/logger"
	"scholarship-portal/internal/usecase/ledger"
	appErrors "scholarship-portal/pkg/errors"
	"scholarship-portal/pkg/utils"

	"go.uber.org/zap"
)

const otpSubject = "Your password reset code"

// Service implements registration, login and the OTP password reset flow
type Service struct {
	userRepo domainUser.Repository
	ledger   *ledger.Ledger
	notifier notification.Notifier
	issuer   *auth.Issuer
}

func NewService(
	userRepo domainUser.Repository,
	otpLedger *ledger.Ledger,
	notifier notification.Notifier,
	issuer *auth.Issuer,
) *Service {
	return &Service{
		userRepo: userRepo,
		ledger:   otpLedger,
		notifier: notifier,
		issuer:   issuer,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AccountResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	if req.Password != req.ConfirmPassword {
		return nil, appErrors.Validation("Passwords do not match", appErrors.ErrPasswordMismatch)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         domainUser.RoleUnset,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrDuplicateEmail) {
			logger.Warn("Registration attempt with existing email",
				zap.String("email", req.Email),
				logger.Event("registration_failed_duplicate_email"),
			)
		}
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		logger.Event("user_registered"),
	)

	return ToAccountResponse(user), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation("Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				logger.Event("user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email),
			logger.Event("login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email, req.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("remember_me", req.RememberMe),
		logger.Event("login_success"),
	)

	return &LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      ToAccountResponse(user),
	}, nil
}

// SendOTP issues a reset code for a registered email and mails it.
func (s *Service) SendOTP(ctx context.Context, req *SendOTPRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation("Invalid input", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("OTP requested for non-existent email",
				zap.String("email", req.Email),
				logger.Event("otp_requested_unknown_email"),
			)
		}
		return err
	}

	replaced, err := s.ledger.State(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to read OTP state: %w", err)
	}

	record, err := s.ledger.Request(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to issue OTP: %w", err)
	}

	msg := notification.Message{
		To:      user.Email,
		Subject: otpSubject,
		HTML:    otpEmailHTML(record.Code, s.ledger.TTL()),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		if discardErr := s.ledger.Discard(ctx, record); discardErr != nil {
			logger.Error("Failed to discard undelivered OTP",
				zap.String("email", user.Email),
				zap.Error(discardErr),
			)
		}
		logger.Error("Failed to deliver OTP email",
			zap.String("email", user.Email),
			logger.Event("otp_delivery_failed"),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	logger.Info("OTP issued",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Time("expires_at", record.ExpiresAt),
		zap.Stringer("replaced_state", replaced),
		logger.Event("otp_issued"),
	)

	return nil
}

func (s *Service) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation("Invalid input", err)
	}

	if err := s.ledger.Check(ctx, req.Email, req.OTP); err != nil {
		logger.Warn("OTP verification failed",
			zap.String("email", req.Email),
			logger.Event("otp_verification_failed"),
			zap.Error(err),
		)
		return err
	}

	logger.Info("OTP verified",
		zap.String("email", req.Email),
		logger.Event("otp_verified"),
	)

	return nil
}

// ResetPassword replaces the password of an email whose OTP was verified and
// consumes the OTP once the new hash is stored.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation("Invalid input", err)
	}

	if err := s.ledger.RequireVerified(ctx, req.Email); err != nil {
		logger.Warn("Password reset attempted without verified OTP",
			zap.String("email", req.Email),
			logger.Event("password_reset_failed_unverified"),
		)
		return err
	}

	if req.Password != req.ConfirmPassword {
		return appErrors.Validation("Passwords do not match", appErrors.ErrPasswordMismatch)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}

	var userID string
	err := s.ledger.ConsumeAndReset(ctx, req.Email, func(ctx context.Context) error {
		user, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return err
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.PasswordHash = hashedPassword
		userID = user.ID.String()
		return s.userRepo.Save(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", userID),
		zap.String("email", req.Email),
		logger.Event("password_reset_success"),
	)

	return nil
}

func otpEmailHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Password reset</h2>
  <p>Use the code below to reset your password:</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">%s</p>
  <p>This code is valid for %d minutes. If you did not request a reset, you can ignore this email.</p>
</div>`, code, int(ttl.Minutes()))
}
