package models

import (
	"time"

	"github.com/google/uuid"
)

// ScholarshipModel represents the database model for a scholarship
type ScholarshipModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SponsorID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status              string     `gorm:"type:varchar(20);not null;index"`
	Type                *string    `gorm:"type:varchar(100)"`
	Purpose             *string    `gorm:"type:varchar(255)"`
	Title               string     `gorm:"type:varchar(255);not null"`
	Description         *string    `gorm:"type:text"`
	TotalAmount         float64    `gorm:"not null"`
	TotalSlot           int        `gorm:"not null"`
	ApplicationDeadline *time.Time
	Criteria            []string   `gorm:"serializer:json;not null"`
	RequiredDocuments   []string   `gorm:"serializer:json;not null"`
	ImageKey            *string    `gorm:"type:varchar(500)"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	UpdatedAt           time.Time  `gorm:"not null"`

	// Relations
	Sponsor *SponsorModel `gorm:"foreignKey:SponsorID;references:ID"`
}

func (ScholarshipModel) TableName() string {
	return "scholarships"
}
