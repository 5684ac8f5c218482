package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainUser "scholarship-portal/internal/domain/user"
	"scholarship-portal/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements domainUser.Repository on top of gorm
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) domainUser.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainUser.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) Save(ctx context.Context, u *domainUser.User) error {
	u.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"password":          u.PasswordHash,
			"role":              string(u.Role),
			"has_selected_role": u.HasSelectedRole,
			"profile_image_key": u.ProfileImageKey,
			"updated_at":        u.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func toUserModel(u *domainUser.User) *models.UserModel {
	return &models.UserModel{
		ID:              u.ID,
		Email:           u.Email,
		Password:        u.PasswordHash,
		Role:            string(u.Role),
		HasSelectedRole: u.HasSelectedRole,
		ProfileImageKey: u.ProfileImageKey,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *domainUser.User {
	return &domainUser.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.Password,
		Role:            domainUser.Role(m.Role),
		HasSelectedRole: m.HasSelectedRole,
		ProfileImageKey: m.ProfileImageKey,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
