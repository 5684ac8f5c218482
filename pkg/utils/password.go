package utils

import (
	"strings"
	"unicode"

	appErrors "scholarship-portal/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8

	// PasswordSymbols is the fixed set of characters accepted as the required symbol.
	PasswordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword reports the first complexity rule the password breaks.
func ValidatePassword(password string) error {
	var (
		hasUpper  = false
		hasLower  = false
		hasNumber = false
		hasSymbol = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case strings.ContainsRune(PasswordSymbols, char):
			hasSymbol = true
		}
	}

	switch {
	case len([]rune(password)) < MinPasswordLength:
		return weakPassword("password must be at least 8 characters long")
	case !hasUpper:
		return weakPassword("password must contain at least one uppercase letter")
	case !hasLower:
		return weakPassword("password must contain at least one lowercase letter")
	case !hasNumber:
		return weakPassword("password must contain at least one number")
	case !hasSymbol:
		return weakPassword("password must contain at least one special character (" + PasswordSymbols + ")")
	}

	return nil
}

func weakPassword(message string) error {
	return appErrors.NewAppError(appErrors.CodeWeakPassword, message, nil)
}
