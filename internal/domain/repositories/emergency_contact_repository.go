package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// EmergencyContactRepository defines emergency contact persistence operations
type EmergencyContactRepository interface {
	Create(ctx context.Context, contact *entities.EmergencyContact) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.EmergencyContact, error)
	Update(ctx context.Context, contact *entities.EmergencyContact) error
	ListByUser(ctx context.Context, userID uuid.UUID, query *entities.EmergencyContactListQuery) ([]*entities.EmergencyContact, int64, error)
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
}
