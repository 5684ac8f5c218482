package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles an account can hold. The zero value means no role yet.
type Role string

const (
	RoleUnset   Role = ""
	RoleStudent Role = "student"
	RoleSponsor Role = "sponsor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles, including unset.
func (r Role) Valid() bool {
	switch r {
	case RoleUnset, RoleStudent, RoleSponsor, RoleAdmin:
		return true
	}
	return false
}

// Selectable reports whether users may pick r for themselves during onboarding.
func (r Role) Selectable() bool {
	return r == RoleStudent || r == RoleSponsor
}

// User represents an account in the domain
type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	Role            Role
	HasSelectedRole bool
	ProfileImageKey *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RoleLocked reports whether onboarding already finalized the role.
func (u *User) RoleLocked() bool {
	return u.Role != RoleUnset && u.HasSelectedRole
}
