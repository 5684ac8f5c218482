package scholarship

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the publication status of a scholarship
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

// Scholarship represents a scholarship offered by a sponsor
type Scholarship struct {
	ID                  uuid.UUID
	SponsorID           uuid.UUID
	Status              Status
	Type                *string
	Purpose             *string
	Title               string
	Description         *string
	TotalAmount         float64
	TotalSlot           int
	ApplicationDeadline *time.Time
	Criteria            []string
	RequiredDocuments   []string
	ImageKey            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Sponsor is populated by read queries only.
	Sponsor *SponsorSummary
}

// SponsorSummary is the sponsor information shown alongside a listing
type SponsorSummary struct {
	ID               uuid.UUID
	OrganizationName string
}

// Filter narrows a scholarship listing
type Filter struct {
	SponsorID *uuid.UUID
	Status    *Status
	Page      int
	PageSize  int
}
