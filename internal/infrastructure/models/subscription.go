package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PackageID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPaid     bool      `gorm:"not null;default:false"`
	IsActivate bool      `gorm:"not null;default:false;index"`
	ExpiredAt  *time.Time
	IsDeleted  bool `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Package *Package `gorm:"foreignKey:PackageID"`
	User    *User    `gorm:"foreignKey:UserID"`
}
