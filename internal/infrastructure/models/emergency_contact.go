package models

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyContact struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Relation    string    `gorm:"type:varchar(100)"`
	PhoneNumber string    `gorm:"type:varchar(30);not null"`
	IsDeleted   bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
