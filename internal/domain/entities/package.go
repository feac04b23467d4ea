package entities

import (
	"time"

	"github.com/google/uuid"
)

// Package represents a purchasable subscription package
type Package struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"` // smallest currency unit
	DurationDay int       `json:"durationDay"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatePackageInput represents input for creating a package
type CreatePackageInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	DurationDay int    `json:"durationDay" binding:"min=0"`
}

// UpdatePackageInput represents a partial package update
type UpdatePackageInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	DurationDay *int    `json:"durationDay"`
}

// PackageListQuery holds search, sort and pagination for package listing
type PackageListQuery struct {
	SearchTerm string
	Sort       string
	Page       int
	Limit      int
}
