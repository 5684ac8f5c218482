package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for the credential store
type Repository interface {
	// Create fails with ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	// Save overwrites the mutable fields of an existing user.
	Save(ctx context.Context, user *User) error
}
