package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// SubscriptionRepository defines subscription persistence operations
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entities.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error)
	// GetOutstanding finds an unpaid, inactive, non-deleted subscription
	// for the (user, package) pair, reused instead of creating duplicates.
	GetOutstanding(ctx context.Context, userID, packageID uuid.UUID) (*entities.Subscription, error)
	// GetActivePaid finds the user's active, paid, non-deleted
	// subscription excluding the given id. Returns ErrNotFound when none.
	GetActivePaid(ctx context.Context, userID uuid.UUID, excludeID uuid.UUID) (*entities.Subscription, error)
	// Activate marks the subscription paid + active with the given expiry
	Activate(ctx context.Context, id uuid.UUID, expiredAt time.Time) error
	// Deactivate clears the active flag without deleting the row
	Deactivate(ctx context.Context, id uuid.UUID) error
	// DeactivateExpired clears the active flag of paid subscriptions whose
	// expiry has passed. Used by the background expiry job.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	Update(ctx context.Context, subscription *entities.Subscription) error
	List(ctx context.Context, query *entities.SubscriptionListQuery) ([]*entities.Subscription, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
