package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
)

// VerificationRepository manages the one-to-one OTP verification record
type VerificationRepository interface {
	Create(ctx context.Context, verification *entities.Verification) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Verification, error)
	// Arm overwrites any pending OTP with a fresh code and expiry and
	// flips status back to false (upsert semantics: a resend invalidates
	// the previous code).
	Arm(ctx context.Context, userID uuid.UUID, otp int, expiredAt time.Time) error
	// ArmRecovery stores a fresh code and expiry but leaves the verified
	// flag untouched, so password recovery does not lock a verified
	// account out of login. Returns ErrNotFound when no record exists.
	ArmRecovery(ctx context.Context, userID uuid.UUID, otp int, expiredAt time.Time) error
	// Consume marks the record verified exactly once: status=true, OTP
	// reset to the sentinel, expiry cleared. Returns ErrNotFound when no
	// record exists for the user.
	Consume(ctx context.Context, userID uuid.UUID) error
}
