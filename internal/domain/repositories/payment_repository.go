package repositories

import (
	"context"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// PaymentRepository defines payment persistence operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	// GetOutstanding finds an unpaid, non-deleted payment for the
	// subscription owned by the given user.
	GetOutstanding(ctx context.Context, subscriptionID, userID uuid.UUID) (*entities.Payment, error)
	// MarkPaid flips is_paid and records the transaction id in a single
	// conditional update. Returns false when the payment was already paid,
	// which makes confirmation idempotent under concurrent retries.
	MarkPaid(ctx context.Context, id uuid.UUID, trnID string, receiptURL string) (bool, error)
	List(ctx context.Context, query *entities.PaymentListQuery) ([]*entities.Payment, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
