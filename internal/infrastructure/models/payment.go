package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Price          int64     `gorm:"not null;default:0"`
	IsPaid         bool      `gorm:"not null;default:false;index"`
	TrnID          *string   `gorm:"type:varchar(255);index"`
	ReceiptURL     *string   `gorm:"type:varchar(500)"`
	IsDeleted      bool      `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
	User         *User         `gorm:"foreignKey:UserID"`
}
