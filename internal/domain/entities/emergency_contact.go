package entities

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact represents a person notified when a user raises an alert
type EmergencyContact struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Relation    string    `json:"relation,omitempty"`
	PhoneNumber string    `json:"phoneNumber"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateEmergencyContactInput represents input for adding a contact
type CreateEmergencyContactInput struct {
	Name        string `json:"name" binding:"required"`
	Relation    string `json:"relation"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UpdateEmergencyContactInput represents a partial contact update
type UpdateEmergencyContactInput struct {
	Name        *string `json:"name"`
	Relation    *string `json:"relation"`
	PhoneNumber *string `json:"phoneNumber"`
}

// EmergencyContactListQuery holds filter, sort and pagination for listing
type EmergencyContactListQuery struct {
	UserID     *uuid.UUID
	SearchTerm string
	Sort       string
	Page       int
	Limit      int
}
