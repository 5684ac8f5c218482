package otp

import (
	"context"
	"time"
)

// Store is the keyed storage behind the reset ledger. Implementations must be
// safe for concurrent use; Set overwrites any existing record for the email.
type Store interface {
	// Get returns ErrOTPNotFound when no record exists for email.
	Get(ctx context.Context, email string) (*Record, error)
	Set(ctx context.Context, record *Record) error
	Delete(ctx context.Context, email string) error
}

// Sweeper is implemented by stores that cannot expire entries on their own.
type Sweeper interface {
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
