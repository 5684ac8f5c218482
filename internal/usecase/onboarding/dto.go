package onboarding

import (
	"github.com/google/uuid"
)

type SelectRoleRequest struct {
	Role string `json:"role" validate:"required,selectable_role"`
}

// SetupProfileRequest carries the fields of either profile kind; which ones
// are required depends on the role the account selected.
type SetupProfileRequest struct {
	FullName         string `json:"full_name"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"date_of_birth"`
	OrganizationName string `json:"organization_name"`
	OrganizationType string `json:"organization_type"`
	OfficialEmail    string `json:"official_email"`
	ContactNumber    string `json:"contact_number"`
}

type studentSetup struct {
	FullName      string `validate:"required,min=2,max=255"`
	Gender        string `validate:"required,max=20"`
	DateOfBirth   string `validate:"required,datetime=2006-01-02"`
	ContactNumber string `validate:"required,phone"`
}

type sponsorSetup struct {
	OrganizationName string `validate:"required,min=2,max=255"`
	OrganizationType string `validate:"required,max=100"`
	OfficialEmail    string `validate:"required,email"`
	ContactNumber    string `validate:"required,phone"`
}

type StatusResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	HasSelectedRole  bool      `json:"has_selected_role"`
	ProfileCompleted bool      `json:"profile_completed"`
}
