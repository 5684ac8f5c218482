package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for an account
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password        string    `gorm:"type:varchar(255);not null"`
	Role            string    `gorm:"type:varchar(20);not null"`
	HasSelectedRole bool      `gorm:"not null"`
	ProfileImageKey *string   `gorm:"type:varchar(500)"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
