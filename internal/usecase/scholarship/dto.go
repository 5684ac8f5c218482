package scholarship

import (
	"time"

	domainScholarship "scholarship-portal/internal/domain/scholarship"

	"github.com/google/uuid"
)

// CreateScholarshipRequest represents the request to publish a scholarship
type CreateScholarshipRequest struct {
	Title               string   `json:"title" validate:"required,min=3,max=255"`
	Type                *string  `json:"type" validate:"omitempty,max=100"`
	Purpose             *string  `json:"purpose" validate:"omitempty,max=255"`
	Description         *string  `json:"description" validate:"omitempty,max=5000"`
	TotalAmount         *float64 `json:"total_amount" validate:"required,gt=0"`
	TotalSlot           *int     `json:"total_slot" validate:"required,gte=1"`
	ApplicationDeadline *string  `json:"application_deadline"`
	Criteria            []string `json:"criteria" validate:"required,min=1,dive,required,max=500"`
	RequiredDocuments   []string `json:"required_documents" validate:"required,min=1,dive,required,max=255"`
}

// UpdateScholarshipRequest patches a scholarship; omitted fields are kept.
type UpdateScholarshipRequest struct {
	Title               *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Type                *string   `json:"type" validate:"omitempty,max=100"`
	Purpose             *string   `json:"purpose" validate:"omitempty,max=255"`
	Description         *string   `json:"description" validate:"omitempty,max=5000"`
	Status              *string   `json:"status" validate:"omitempty,oneof=active closed"`
	TotalAmount         *float64  `json:"total_amount" validate:"omitempty,gt=0"`
	TotalSlot           *int      `json:"total_slot" validate:"omitempty,gte=1"`
	ApplicationDeadline *string   `json:"application_deadline"`
	Criteria            *[]string `json:"criteria" validate:"omitempty,min=1,dive,required,max=500"`
	RequiredDocuments   *[]string `json:"required_documents" validate:"omitempty,min=1,dive,required,max=255"`
}

// ListQuery carries the public listing query parameters
type ListQuery struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	Status   string `form:"status" validate:"omitempty,oneof=active closed"`
}

type SponsorSummaryResponse struct {
	ID               uuid.UUID `json:"sponsor_id"`
	OrganizationName string    `json:"organization_name"`
}

type ScholarshipResponse struct {
	ID                  uuid.UUID               `json:"scholarship_id"`
	SponsorID           uuid.UUID               `json:"sponsor_id"`
	Status              string                  `json:"status"`
	Type                *string                 `json:"type"`
	Purpose             *string                 `json:"purpose"`
	Title               string                  `json:"title"`
	Description         *string                 `json:"description"`
	TotalAmount         float64                 `json:"total_amount"`
	TotalSlot           int                     `json:"total_slot"`
	ApplicationDeadline *time.Time              `json:"application_deadline"`
	Criteria            []string                `json:"criteria"`
	RequiredDocuments   []string                `json:"required_documents"`
	ImageURL            *string                 `json:"image_url"`
	Sponsor             *SponsorSummaryResponse `json:"sponsor,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

type ListResponse struct {
	Scholarships []*ScholarshipResponse `json:"scholarships"`
	Total        int64                  `json:"total"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
}

func toScholarshipResponse(s *domainScholarship.Scholarship, imageURL *string) *ScholarshipResponse {
	resp := &ScholarshipResponse{
		ID:                  s.ID,
		SponsorID:           s.SponsorID,
		Status:              string(s.Status),
		Type:                s.Type,
		Purpose:             s.Purpose,
		Title:               s.Title,
		Description:         s.Description,
		TotalAmount:         s.TotalAmount,
		TotalSlot:           s.TotalSlot,
		ApplicationDeadline: s.ApplicationDeadline,
		Criteria:            s.Criteria,
		RequiredDocuments:   s.RequiredDocuments,
		ImageURL:            imageURL,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	if s.Sponsor != nil {
		resp.Sponsor = &SponsorSummaryResponse{
			ID:               s.Sponsor.ID,
			OrganizationName: s.Sponsor.OrganizationName,
		}
	}
	return resp
}
