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

func TestPaymentRepository_CreateAndGetOutstanding(t *testing.T) {
	db := newTestDB(t)
	createPackageTable(t, db)
	createSubscriptionTable(t, db)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	subscriptionID := uuid.New()

	p := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Price:          999,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetOutstanding(ctx, subscriptionID, userID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.EqualValues(t, 999, got.Price)
	require.False(t, got.IsPaid)

	// another user's id does not match
	_, err = repo.GetOutstanding(ctx, subscriptionID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentRepository_MarkPaidIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createPackageTable(t, db)
	createSubscriptionTable(t, db)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: uuid.New(),
		UserID:         uuid.New(),
		Price:          1500,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, p))

	first, err := repo.MarkPaid(ctx, p.ID, "txn_abc", "https://pay.example.com/receipts/1")
	require.NoError(t, err)
	require.True(t, first)

	second, err := repo.MarkPaid(ctx, p.ID, "txn_other", "")
	require.NoError(t, err)
	require.False(t, second)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.IsPaid)
	require.Equal(t, "txn_abc", got.TrnID.String)
	require.Equal(t, "https://pay.example.com/receipts/1", got.ReceiptURL.String)
}

func TestPaymentRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createPackageTable(t, db)
	createSubscriptionTable(t, db)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	mine := uuid.New()

	paid := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: uuid.New(),
		UserID:         mine,
		Price:          999,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, paid))
	_, err := repo.MarkPaid(ctx, paid.ID, "txn_1", "")
	require.NoError(t, err)

	unpaid := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: uuid.New(),
		UserID:         mine,
		Price:          500,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, unpaid))

	isPaid := true
	payments, total, err := repo.List(ctx, &entities.PaymentListQuery{UserID: &mine, IsPaid: &isPaid, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, paid.ID, payments[0].ID)

	payments, total, err = repo.List(ctx, &entities.PaymentListQuery{UserID: &mine, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, payments, 2)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createPackageTable(t, db)
	createPaymentTable(t, db)
	createSubscriptionTable(t, db)
	uow := NewUnitOfWork(db)
	payRepo := NewPaymentRepository(db)
	subRepo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub := &entities.Subscription{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		PackageID: uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, subRepo.Create(ctx, sub))

	p := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Price:          999,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, payRepo.Create(ctx, p))

	err := uow.Do(ctx, func(txCtx context.Context) error {
		ok, err := payRepo.MarkPaid(txCtx, p.ID, "txn_rollback", "")
		require.NoError(t, err)
		require.True(t, ok)
		return domainerrors.ErrBadRequest
	})
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)

	got, err := payRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, got.IsPaid)
}

func TestUnitOfWork_CommitsAcrossRepositories(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	createPackageTable(t, db)
	createPaymentTable(t, db)
	createSubscriptionTable(t, db)
	uow := NewUnitOfWork(db)
	payRepo := NewPaymentRepository(db)
	subRepo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub := &entities.Subscription{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		PackageID: uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, subRepo.Create(ctx, sub))

	p := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Price:          999,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, payRepo.Create(ctx, p))

	expiry := time.Now().Add(30 * 24 * time.Hour)
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := payRepo.MarkPaid(txCtx, p.ID, "txn_commit", ""); err != nil {
			return err
		}
		return subRepo.Activate(txCtx, sub.ID, expiry)
	})
	require.NoError(t, err)

	gotPayment, err := payRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, gotPayment.IsPaid)

	gotSub, err := subRepo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	require.True(t, gotSub.IsActivate)
	require.WithinDuration(t, expiry, gotSub.ExpiredAt.Time, time.Second)
}
