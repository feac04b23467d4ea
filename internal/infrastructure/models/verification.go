package models

import (
	"time"

	"github.com/google/uuid"
)

type Verification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OTP       int       `gorm:"not null;default:0"`
	ExpiredAt *time.Time
	Status    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
