package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Session errors carry the exact text clients receive.
	ErrMissingToken            = errors.New("Access token required")
	ErrInvalidToken            = errors.New("Invalid or expired token")
	ErrUnauthorized            = errors.New("User not authenticated")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrPasswordMismatch = errors.New("passwords do not match")

	ErrInvalidImage  = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")
	ErrMissingImage  = errors.New("no image file provided")
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeWeakPassword = "WEAK_PASSWORD"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps a client input problem that is answered with 400.
func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

func Forbidden(message string) *AppError {
	return NewAppError(CodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, message, nil)
}
