package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainProfile "scholarship-portal/internal/domain/profile"
	"scholarship-portal/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository implements domainProfile.Repository on top of gorm
type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) domainProfile.Repository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetStudentByUserID(ctx context.Context, userID uuid.UUID) (*domainProfile.Student, error) {
	var dbModel models.StudentModel
	err := r.db.DB.WithContext(ctx).Where("user_id = ?", userID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainProfile.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	return toStudentEntity(&dbModel), nil
}

func (r *ProfileRepository) SaveStudent(ctx context.Context, s *domainProfile.Student) error {
	now := time.Now().UTC()
	s.UpdatedAt = now

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.CreatedAt = now
		if err := r.db.DB.WithContext(ctx).Create(toStudentModel(s)).Error; err != nil {
			s.ID = uuid.Nil
			return fmt.Errorf("failed to create student profile: %w", err)
		}
		return nil
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.StudentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"full_name":             s.FullName,
			"gender":                s.Gender,
			"date_of_birth":         s.DateOfBirth,
			"contact_number":        s.ContactNumber,
			"has_completed_profile": s.HasCompletedProfile,
			"updated_at":            s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update student profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProfile.ErrStudentNotFound
	}

	return nil
}

func (r *ProfileRepository) GetSponsorByUserID(ctx context.Context, userID uuid.UUID) (*domainProfile.Sponsor, error) {
	var dbModel models.SponsorModel
	err := r.db.DB.WithContext(ctx).Where("user_id = ?", userID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainProfile.ErrSponsorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sponsor profile: %w", err)
	}

	return toSponsorEntity(&dbModel), nil
}

func (r *ProfileRepository) SaveSponsor(ctx context.Context, s *domainProfile.Sponsor) error {
	now := time.Now().UTC()
	s.UpdatedAt = now

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.CreatedAt = now
		if err := r.db.DB.WithContext(ctx).Create(toSponsorModel(s)).Error; err != nil {
			s.ID = uuid.Nil
			return fmt.Errorf("failed to create sponsor profile: %w", err)
		}
		return nil
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.SponsorModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"organization_name":     s.OrganizationName,
			"organization_type":     s.OrganizationType,
			"official_email":        s.OfficialEmail,
			"contact_number":        s.ContactNumber,
			"has_completed_profile": s.HasCompletedProfile,
			"updated_at":            s.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update sponsor profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProfile.ErrSponsorNotFound
	}

	return nil
}

func toStudentModel(s *domainProfile.Student) *models.StudentModel {
	return &models.StudentModel{
		ID:                  s.ID,
		UserID:              s.UserID,
		FullName:            s.FullName,
		Gender:              s.Gender,
		DateOfBirth:         s.DateOfBirth,
		ContactNumber:       s.ContactNumber,
		HasCompletedProfile: s.HasCompletedProfile,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toStudentEntity(m *models.StudentModel) *domainProfile.Student {
	return &domainProfile.Student{
		ID:                  m.ID,
		UserID:              m.UserID,
		FullName:            m.FullName,
		Gender:              m.Gender,
		DateOfBirth:         m.DateOfBirth,
		ContactNumber:       m.ContactNumber,
		HasCompletedProfile: m.HasCompletedProfile,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toSponsorModel(s *domainProfile.Sponsor) *models.SponsorModel {
	return &models.SponsorModel{
		ID:                  s.ID,
		UserID:              s.UserID,
		OrganizationName:    s.OrganizationName,
		OrganizationType:    s.OrganizationType,
		OfficialEmail:       s.OfficialEmail,
		ContactNumber:       s.ContactNumber,
		HasCompletedProfile: s.HasCompletedProfile,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

func toSponsorEntity(m *models.SponsorModel) *domainProfile.Sponsor {
	return &domainProfile.Sponsor{
		ID:                  m.ID,
		UserID:              m.UserID,
		OrganizationName:    m.OrganizationName,
		OrganizationType:    m.OrganizationType,
		OfficialEmail:       m.OfficialEmail,
		ContactNumber:       m.ContactNumber,
		HasCompletedProfile: m.HasCompletedProfile,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
