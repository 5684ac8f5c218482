package scholarship

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for scholarship persistence
type Repository interface {
	Create(ctx context.Context, scholarship *Scholarship) error
	GetByID(ctx context.Context, scholarshipID uuid.UUID) (*Scholarship, error)
	Update(ctx context.Context, scholarship *Scholarship) error
	// List returns scholarships newest first together with the total count.
	List(ctx context.Context, filter *Filter) ([]*Scholarship, int64, error)
}
