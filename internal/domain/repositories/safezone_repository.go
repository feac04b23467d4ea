package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// SafeZoneRepository defines safe zone persistence operations
type SafeZoneRepository interface {
	Create(ctx context.Context, zone *entities.SafeZone) error
	// GetByID returns a non-deleted zone belonging to the given user
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.SafeZone, error)
	Update(ctx context.Context, zone *entities.SafeZone) error
	ListByUser(ctx context.Context, userID uuid.UUID, query *entities.SafeZoneListQuery) ([]*entities.SafeZone, int64, error)
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
}
