package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertPost struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text;not null"`
	Image       *string   `gorm:"type:varchar(500)"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	Address     string    `gorm:"type:varchar(500)"`
	IsDeleted   bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
