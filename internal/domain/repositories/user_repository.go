package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	// GetByEmail matches the lower-cased, trimmed email and includes the
	// verification record. Soft-deleted users are still returned; callers
	// gate on IsDeleted.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetCustomerID(ctx context.Context, id uuid.UUID, customerID string) error
	List(ctx context.Context, query *entities.UserListQuery) ([]*entities.User, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// LoginDeviceRepository records append-only login fingerprints
type LoginDeviceRepository interface {
	Create(ctx context.Context, device *entities.LoginDevice) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.LoginDevice, error)
}
