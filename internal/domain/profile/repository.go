package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for student and sponsor profile persistence
type Repository interface {
	GetStudentByUserID(ctx context.Context, userID uuid.UUID) (*Student, error)
	// SaveStudent creates the profile when its ID is zero and updates it otherwise.
	SaveStudent(ctx context.Context, student *Student) error

	GetSponsorByUserID(ctx context.Context, userID uuid.UUID) (*Sponsor, error)
	SaveSponsor(ctx context.Context, sponsor *Sponsor) error
}
