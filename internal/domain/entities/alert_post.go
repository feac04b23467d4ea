package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AlertPost represents a distress alert posted by a user
type AlertPost struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	Description string      `json:"description"`
	Image       null.String `json:"image,omitempty"`
	Location    Location    `json:"location"`
	IsDeleted   bool        `json:"-"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateAlertPostInput represents input for posting an alert
type CreateAlertPostInput struct {
	Description string   `json:"description" binding:"required"`
	Image       string   `json:"image"`
	Location    Location `json:"location" binding:"required"`
}

// UpdateAlertPostInput represents a partial alert update
type UpdateAlertPostInput struct {
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Location    *Location `json:"location"`
}

// AlertPostListQuery holds filter, sort and pagination for listing
type AlertPostListQuery struct {
	UserID     *uuid.UUID
	SearchTerm string
	Sort       string
	Page       int
	Limit      int
}
