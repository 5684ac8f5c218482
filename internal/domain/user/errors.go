package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidUserRole     = errors.New("invalid role, must be 'student' or 'sponsor'")
	ErrRoleAlreadySelected = errors.New("role has already been selected")
	ErrRoleNotSelected     = errors.New("role has not been selected yet")
)
