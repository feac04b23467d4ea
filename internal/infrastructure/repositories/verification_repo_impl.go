package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/infrastructure/models"
	"safealert.backend/pkg/utils"
)

// VerificationRepository implements OTP verification record operations
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create creates the verification record for a user
func (r *VerificationRepository) Create(ctx context.Context, verification *entities.Verification) error {
	m := &models.Verification{
		ID:        verification.ID,
		UserID:    verification.UserID,
		OTP:       verification.OTP,
		ExpiredAt: verification.ExpiredAt.Ptr(),
		Status:    verification.Status,
		CreatedAt: verification.CreatedAt,
		UpdatedAt: verification.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByUserID gets the verification record of a user
func (r *VerificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Verification, error) {
	var m models.Verification
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return verificationToEntity(&m), nil
}

// Arm stores a fresh OTP with its expiry, creating the record if missing.
// Re-arming replaces the previous code, so only the latest one verifies.
func (r *VerificationRepository) Arm(ctx context.Context, userID uuid.UUID, otp int, expiredAt time.Time) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.Verification{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"otp":        otp,
			"expired_at": expiredAt,
			"status":     false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return err
	}
	m := &models.Verification{
		ID:        id,
		UserID:    userID,
		OTP:       otp,
		ExpiredAt: &expiredAt,
		Status:    false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return db.Create(m).Error
}

// ArmRecovery stores a fresh OTP and expiry without touching the verified
// flag. Used by password recovery, which targets accounts that already
// completed signup verification.
func (r *VerificationRepository) ArmRecovery(ctx context.Context, userID uuid.UUID, otp int, expiredAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Verification{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"otp":        otp,
			"expired_at": expiredAt,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Consume marks the record verified and invalidates the stored code
func (r *VerificationRepository) Consume(ctx context.Context, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Verification{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"otp":        entities.OTPConsumedSentinel,
			"expired_at": nil,
			"status":     true,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func verificationToEntity(m *models.Verification) *entities.Verification {
	return &entities.Verification{
		ID:        m.ID,
		UserID:    m.UserID,
		OTP:       m.OTP,
		ExpiredAt: null.TimeFromPtr(m.ExpiredAt),
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
