package otp

import "errors"

var (
	ErrOTPNotFound    = errors.New("no OTP found for this email, please request a new one")
	ErrOTPExpired     = errors.New("OTP has expired, please request a new one")
	ErrOTPMismatch    = errors.New("invalid OTP")
	ErrOTPNotVerified = errors.New("OTP has not been verified")
)
