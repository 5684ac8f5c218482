package profile

import (
	"time"

	"github.com/google/uuid"
)

// Student is the profile completed by users who selected the student role
type Student struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	FullName            string
	Gender              string
	DateOfBirth         *time.Time
	ContactNumber       string
	HasCompletedProfile bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Sponsor is the organization profile completed by users who selected the sponsor role
type Sponsor struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	OrganizationName    string
	OrganizationType    string
	OfficialEmail       string
	ContactNumber       string
	HasCompletedProfile bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
