package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// PackageRepository defines package persistence operations
type PackageRepository interface {
	Create(ctx context.Context, pkg *entities.Package) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Package, error)
	Update(ctx context.Context, pkg *entities.Package) error
	List(ctx context.Context, query *entities.PackageListQuery) ([]*entities.Package, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
