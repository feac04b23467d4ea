package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
)

func TestVerificationRepository_ArmCreatesAndReArms(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	firstExpiry := time.Now().Add(3 * time.Minute)
	require.NoError(t, repo.Arm(ctx, userID, 111111, firstExpiry))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 111111, got.OTP)
	require.False(t, got.Status)
	require.True(t, got.ExpiredAt.Valid)

	// re-arm replaces the code instead of creating a second record
	require.NoError(t, repo.Arm(ctx, userID, 222222, time.Now().Add(3*time.Minute)))

	got, err = repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 222222, got.OTP)

	var count int64
	require.NoError(t, db.Table("verifications").Where("user_id = ?", userID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestVerificationRepository_ArmResetsConsumedStatus(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Arm(ctx, userID, 333333, time.Now().Add(3*time.Minute)))
	require.NoError(t, repo.Consume(ctx, userID))

	require.NoError(t, repo.Arm(ctx, userID, 444444, time.Now().Add(3*time.Minute)))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.False(t, got.Status)
	require.Equal(t, 444444, got.OTP)
}

func TestVerificationRepository_ArmRecoveryPreservesStatus(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Arm(ctx, userID, 666666, time.Now().Add(3*time.Minute)))
	require.NoError(t, repo.Consume(ctx, userID))

	// a recovery code for a verified account must not un-verify it
	require.NoError(t, repo.ArmRecovery(ctx, userID, 777777, time.Now().Add(3*time.Minute)))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, got.Status)
	require.Equal(t, 777777, got.OTP)
	require.True(t, got.ExpiredAt.Valid)
}

func TestVerificationRepository_ArmRecoveryMissingRecord(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)

	err := repo.ArmRecovery(context.Background(), uuid.New(), 123456, time.Now().Add(3*time.Minute))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerificationRepository_ConsumeInvalidatesCode(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Arm(ctx, userID, 555555, time.Now().Add(3*time.Minute)))
	require.NoError(t, repo.Consume(ctx, userID))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, got.Status)
	require.Equal(t, entities.OTPConsumedSentinel, got.OTP)
	require.False(t, got.ExpiredAt.Valid)
}

func TestVerificationRepository_ConsumeMissingRecord(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewVerificationRepository(db)

	err := repo.Consume(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
