package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PhoneNumber  string    `gorm:"type:varchar(30)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null;default:'user'"`
	Status       string    `gorm:"type:varchar(50);not null;default:'active'"`
	Profile      *string   `gorm:"type:varchar(500)"`
	CustomerID   *string   `gorm:"type:varchar(255);index"`
	IsDeleted    bool      `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Verification *Verification `gorm:"foreignKey:UserID"`
}

type LoginDevice struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IP        string    `gorm:"type:varchar(64)"`
	Browser   string    `gorm:"type:varchar(100)"`
	OS        string    `gorm:"type:varchar(100)"`
	Device    string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
}
