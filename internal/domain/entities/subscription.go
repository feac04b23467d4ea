package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Subscription represents a user's subscription to a package. At most one
// subscription per user may be active at a time; activation of a new one
// deactivates the previous inside the same transaction.
type Subscription struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	PackageID  uuid.UUID `json:"packageId"`
	IsPaid     bool      `json:"isPaid"`
	IsActivate bool      `json:"isActivate"`
	ExpiredAt  null.Time `json:"expiredAt,omitempty"`
	IsDeleted  bool      `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Package *Package `json:"package,omitempty"`
	User    *User    `json:"user,omitempty"`
}

// CreateSubscriptionInput represents input for requesting a subscription
type CreateSubscriptionInput struct {
	PackageID uuid.UUID `json:"packageId" binding:"required"`
}

// UpdateSubscriptionInput represents input for switching an unpaid
// subscription request to a different package
type UpdateSubscriptionInput struct {
	PackageID uuid.UUID `json:"packageId" binding:"required"`
}

// SubscriptionListQuery holds filter, sort and pagination for listing
type SubscriptionListQuery struct {
	UserID     *uuid.UUID
	SearchTerm string
	Sort       string
	Page       int
	Limit      int
}
