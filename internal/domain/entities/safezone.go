package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Location is a geographic point with an optional human-readable address
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// SafeZone represents a geofenced expected-return route registered by a user
type SafeZone struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Description    string    `json:"description,omitempty"`
	StartLocation  Location  `json:"startLocation"`
	EndLocation    Location  `json:"endLocation"`
	ExpectedReturn null.Time `json:"expectedReturn,omitempty"`
	IsDeleted      bool      `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateSafeZoneInput represents input for registering a safe zone
type CreateSafeZoneInput struct {
	Description    string     `json:"description"`
	StartLocation  Location   `json:"startLocation" binding:"required"`
	EndLocation    Location   `json:"endLocation" binding:"required"`
	ExpectedReturn *time.Time `json:"expectedReturn"`
}

// UpdateSafeZoneInput represents a partial safe zone update
type UpdateSafeZoneInput struct {
	Description    *string    `json:"description"`
	StartLocation  *Location  `json:"startLocation"`
	EndLocation    *Location  `json:"endLocation"`
	ExpectedReturn *time.Time `json:"expectedReturn"`
}

// SafeZoneListQuery holds filter, sort and pagination for listing
type SafeZoneListQuery struct {
	UserID     *uuid.UUID
	SearchTerm string
	Sort       string
	Page       int
	Limit      int
}
