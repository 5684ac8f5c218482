package profile

import (
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	domainUser "scholarship-portal/internal/domain/user"

	"github.com/google/uuid"
)

// UpdateProfileRequest patches the role profile; omitted fields are kept.
type UpdateProfileRequest struct {
	FullName         *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Gender           *string `json:"gender" validate:"omitempty,max=20"`
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	OrganizationName *string `json:"organization_name" validate:"omitempty,min=2,max=255"`
	OrganizationType *string `json:"organization_type" validate:"omitempty,max=100"`
	OfficialEmail    *string `json:"official_email" validate:"omitempty,email"`
	ContactNumber    *string `json:"contact_number" validate:"omitempty,phone"`
}

type UserSummary struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	HasSelectedRole bool      `json:"has_selected_role"`
}

type StudentResponse struct {
	ID                  uuid.UUID `json:"student_id"`
	FullName            string    `json:"full_name"`
	Gender              string    `json:"gender"`
	DateOfBirth         *string   `json:"date_of_birth"`
	ContactNumber       string    `json:"contact_number"`
	HasCompletedProfile bool      `json:"has_completed_profile"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type SponsorResponse struct {
	ID                  uuid.UUID `json:"sponsor_id"`
	OrganizationName    string    `json:"organization_name"`
	OrganizationType    string    `json:"organization_type"`
	OfficialEmail       string    `json:"official_email"`
	ContactNumber       string    `json:"contact_number"`
	HasCompletedProfile bool      `json:"has_completed_profile"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ProfileResponse struct {
	User              *UserSummary     `json:"user"`
	ProfilePictureURL *string          `json:"profile_url"`
	Student           *StudentResponse `json:"student,omitempty"`
	Sponsor           *SponsorResponse `json:"sponsor,omitempty"`
}

type PictureResponse struct {
	ProfilePictureURL string `json:"profile_url"`
}

func toUserSummary(u *domainUser.User) *UserSummary {
	return &UserSummary{
		ID:              u.ID,
		Email:           u.Email,
		Role:            string(u.Role),
		HasSelectedRole: u.HasSelectedRole,
	}
}

func toStudentResponse(s *domainProfile.Student) *StudentResponse {
	if s == nil {
		return nil
	}
	resp := &StudentResponse{
		ID:                  s.ID,
		FullName:            s.FullName,
		Gender:              s.Gender,
		ContactNumber:       s.ContactNumber,
		HasCompletedProfile: s.HasCompletedProfile,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.DateOfBirth != nil {
		dob := s.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func toSponsorResponse(s *domainProfile.Sponsor) *SponsorResponse {
	if s == nil {
		return nil
	}
	return &SponsorResponse{
		ID:                  s.ID,
		OrganizationName:    s.OrganizationName,
		OrganizationType:    s.OrganizationType,
		OfficialEmail:       s.OfficialEmail,
		ContactNumber:       s.ContactNumber,
		HasCompletedProfile: s.HasCompletedProfile,
		UpdatedAt:           s.UpdatedAt,
	}
}
