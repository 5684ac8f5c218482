package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainScholarship "scholarship-portal/internal/domain/scholarship"
	"scholarship-portal/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScholarshipRepository implements domainScholarship.Repository on top of gorm
type ScholarshipRepository struct {
	db *DB
}

func NewScholarshipRepository(db *DB) domainScholarship.Repository {
	return &ScholarshipRepository{db: db}
}

func (r *ScholarshipRepository) Create(ctx context.Context, s *domainScholarship.Scholarship) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = domainScholarship.StatusActive
	}

	if err := r.db.DB.WithContext(ctx).Create(toScholarshipModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create scholarship: %w", err)
	}

	return nil
}

func (r *ScholarshipRepository) GetByID(ctx context.Context, scholarshipID uuid.UUID) (*domainScholarship.Scholarship, error) {
	var dbModel models.ScholarshipModel
	err := r.db.DB.WithContext(ctx).
		Preload("Sponsor").
		Where("id = ?", scholarshipID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainScholarship.ErrScholarshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}

	return toScholarshipEntity(&dbModel), nil
}

func (r *ScholarshipRepository) Update(ctx context.Context, s *domainScholarship.Scholarship) error {
	s.UpdatedAt = time.Now().UTC()
	m := toScholarshipModel(s)

	result := r.db.DB.WithContext(ctx).
		Model(&models.ScholarshipModel{}).
		Where("id = ?", s.ID).
		Select("status", "type", "purpose", "title", "description", "total_amount", "total_slot",
			"application_deadline", "criteria", "required_documents", "image_key", "updated_at").
		Updates(m)

	if result.Error != nil {
		return fmt.Errorf("failed to update scholarship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainScholarship.ErrScholarshipNotFound
	}

	return nil
}

func (r *ScholarshipRepository) List(ctx context.Context, filter *domainScholarship.Filter) ([]*domainScholarship.Scholarship, int64, error) {
	scoped := func() *gorm.DB {
		query := r.db.DB.WithContext(ctx).Model(&models.ScholarshipModel{})
		if filter == nil {
			return query
		}
		if filter.SponsorID != nil {
			query = query.Where("sponsor_id = ?", *filter.SponsorID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", string(*filter.Status))
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count scholarships: %w", err)
	}

	query := scoped()
	if filter != nil && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var dbModels []models.ScholarshipModel
	err := query.
		Preload("Sponsor").
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list scholarships: %w", err)
	}

	scholarships := make([]*domainScholarship.Scholarship, 0, len(dbModels))
	for i := range dbModels {
		scholarships = append(scholarships, toScholarshipEntity(&dbModels[i]))
	}

	return scholarships, total, nil
}

func toScholarshipModel(s *domainScholarship.Scholarship) *models.ScholarshipModel {
	criteria := s.Criteria
	if criteria == nil {
		criteria = []string{}
	}
	documents := s.RequiredDocuments
	if documents == nil {
		documents = []string{}
	}

	return &models.ScholarshipModel{
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
		Criteria:            criteria,
		RequiredDocuments:   documents,
		ImageKey:            s.ImageKey,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toScholarshipEntity(m *models.ScholarshipModel) *domainScholarship.Scholarship {
	s := &domainScholarship.Scholarship{
		ID:                  m.ID,
		SponsorID:           m.SponsorID,
		Status:              domainScholarship.Status(m.Status),
		Type:                m.Type,
		Purpose:             m.Purpose,
		Title:               m.Title,
		Description:         m.Description,
		TotalAmount:         m.TotalAmount,
		TotalSlot:           m.TotalSlot,
		ApplicationDeadline: m.ApplicationDeadline,
		Criteria:            m.Criteria,
		RequiredDocuments:   m.RequiredDocuments,
		ImageKey:            m.ImageKey,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if s.Criteria == nil {
		s.Criteria = []string{}
	}
	if s.RequiredDocuments == nil {
		s.RequiredDocuments = []string{}
	}

	if m.Sponsor != nil {
		s.Sponsor = &domainScholarship.SponsorSummary{
			ID:               m.Sponsor.ID,
			OrganizationName: m.Sponsor.OrganizationName,
		}
	}

	return s
}
