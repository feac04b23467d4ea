package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/utils"
)

// SafeZoneUsecase handles a user's expected-return routes
type SafeZoneUsecase struct {
	safeZoneRepo repositories.SafeZoneRepository
}

// NewSafeZoneUsecase creates a new safe zone usecase
func NewSafeZoneUsecase(safeZoneRepo repositories.SafeZoneRepository) *SafeZoneUsecase {
	return &SafeZoneUsecase{safeZoneRepo: safeZoneRepo}
}

func validLocation(loc entities.Location) bool {
	return loc.Latitude >= -90 && loc.Latitude <= 90 && loc.Longitude >= -180 && loc.Longitude <= 180
}

// Create registers a safe zone for the user
func (u *SafeZoneUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateSafeZoneInput) (*entities.SafeZone, error) {
	if !validLocation(input.StartLocation) || !validLocation(input.EndLocation) {
		return nil, domainerrors.BadRequest("coordinates are out of range")
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, err
	}
	zone := &entities.SafeZone{
		ID:            id,
		UserID:        userID,
		Description:   input.Description,
		StartLocation: input.StartLocation,
		EndLocation:   input.EndLocation,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if input.ExpectedReturn != nil {
		zone.ExpectedReturn = null.TimeFrom(*input.ExpectedReturn)
	}
	if err := u.safeZoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// GetByID returns a zone owned by the user
func (u *SafeZoneUsecase) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.SafeZone, error) {
	zone, err := u.safeZoneRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("safe zone not found")
		}
		return nil, err
	}
	return zone, nil
}

// Update applies a partial update to a zone owned by the user
func (u *SafeZoneUsecase) Update(ctx context.Context, id, userID uuid.UUID, input *entities.UpdateSafeZoneInput) (*entities.SafeZone, error) {
	zone, err := u.safeZoneRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("safe zone not found")
		}
		return nil, err
	}

	if input.Description != nil {
		zone.Description = *input.Description
	}
	if input.StartLocation != nil {
		if !validLocation(*input.StartLocation) {
			return nil, domainerrors.BadRequest("coordinates are out of range")
		}
		zone.StartLocation = *input.StartLocation
	}
	if input.EndLocation != nil {
		if !validLocation(*input.EndLocation) {
			return nil, domainerrors.BadRequest("coordinates are out of range")
		}
		zone.EndLocation = *input.EndLocation
	}
	if input.ExpectedReturn != nil {
		zone.ExpectedReturn = null.TimeFrom(*input.ExpectedReturn)
	}

	if err := u.safeZoneRepo.Update(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// List lists the user's zones
func (u *SafeZoneUsecase) List(ctx context.Context, userID uuid.UUID, query *entities.SafeZoneListQuery) ([]*entities.SafeZone, int64, error) {
	return u.safeZoneRepo.ListByUser(ctx, userID, query)
}

// SoftDelete removes a zone owned by the user
func (u *SafeZoneUsecase) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.safeZoneRepo.SoftDelete(ctx, id, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("safe zone not found")
		}
		return err
	}
	return nil
}
