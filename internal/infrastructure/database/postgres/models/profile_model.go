package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentModel represents the database model for a student profile
type StudentModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	FullName            string     `gorm:"type:varchar(255);not null"`
	Gender              string     `gorm:"type:varchar(20);not null"`
	DateOfBirth         *time.Time `gorm:"type:date"`
	ContactNumber       string     `gorm:"type:varchar(20);not null"`
	HasCompletedProfile bool       `gorm:"not null"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (StudentModel) TableName() string {
	return "students"
}

// SponsorModel represents the database model for a sponsor organization
type SponsorModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrganizationName    string    `gorm:"type:varchar(255);not null"`
	OrganizationType    string    `gorm:"type:varchar(100);not null"`
	OfficialEmail       string    `gorm:"type:varchar(255);not null"`
	ContactNumber       string    `gorm:"type:varchar(20);not null"`
	HasCompletedProfile bool      `gorm:"not null"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (SponsorModel) TableName() string {
	return "sponsors"
}
