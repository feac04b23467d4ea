package models

import (
	"time"

	"github.com/google/uuid"
)

type SafeZone struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Description    string    `gorm:"type:text"`
	StartLatitude  float64   `gorm:"not null"`
	StartLongitude float64   `gorm:"not null"`
	StartAddress   string    `gorm:"type:varchar(500)"`
	EndLatitude    float64   `gorm:"not null"`
	EndLongitude   float64   `gorm:"not null"`
	EndAddress     string    `gorm:"type:varchar(500)"`
	ExpectedReturn *time.Time
	IsDeleted      bool `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
