package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// AlertPostRepository defines alert post persistence operations
type AlertPostRepository interface {
	Create(ctx context.Context, post *entities.AlertPost) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.AlertPost, error)
	Update(ctx context.Context, post *entities.AlertPost) error
	ListByUser(ctx context.Context, userID uuid.UUID, query *entities.AlertPostListQuery) ([]*entities.AlertPost, int64, error)
	SoftDelete(ctx context.Context, id, userID uuid.UUID) error
}
