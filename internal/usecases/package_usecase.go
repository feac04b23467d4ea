package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/utils"
)

// PackageUsecase handles package catalogue management
type PackageUsecase struct {
	packageRepo repositories.PackageRepository
}

// NewPackageUsecase creates a new package usecase
func NewPackageUsecase(packageRepo repositories.PackageRepository) *PackageUsecase {
	return &PackageUsecase{packageRepo: packageRepo}
}

// Create adds a package to the catalogue
func (u *PackageUsecase) Create(ctx context.Context, input *entities.CreatePackageInput) (*entities.Package, error) {
	if input.Price < 0 || input.DurationDay <= 0 {
		return nil, domainerrors.BadRequest("price and duration must be positive")
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, err
	}
	pkg := &entities.Package{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		DurationDay: input.DurationDay,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := u.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// GetByID returns a package
func (u *PackageUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Package, error) {
	pkg, err := u.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("package not found")
		}
		return nil, err
	}
	return pkg, nil
}

// Update applies a partial package update
func (u *PackageUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePackageInput) (*entities.Package, error) {
	pkg, err := u.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("package not found")
		}
		return nil, err
	}

	if input.Title != nil {
		pkg.Title = *input.Title
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domainerrors.BadRequest("price must not be negative")
		}
		pkg.Price = *input.Price
	}
	if input.DurationDay != nil {
		if *input.DurationDay <= 0 {
			return nil, domainerrors.BadRequest("duration must be positive")
		}
		pkg.DurationDay = *input.DurationDay
	}

	if err := u.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// List lists catalogue packages
func (u *PackageUsecase) List(ctx context.Context, query *entities.PackageListQuery) ([]*entities.Package, int64, error) {
	return u.packageRepo.List(ctx, query)
}

// SoftDelete removes a package from the catalogue. Existing subscriptions
// keep their pricing snapshot on the payment row.
func (u *PackageUsecase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := u.packageRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("package not found")
		}
		return err
	}
	return nil
}
