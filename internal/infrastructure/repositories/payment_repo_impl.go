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

var paymentSortColumns = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
}

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:             payment.ID,
		SubscriptionID: payment.SubscriptionID,
		UserID:         payment.UserID,
		Price:          payment.Price,
		IsPaid:         payment.IsPaid,
		TrnID:          payment.TrnID.Ptr(),
		ReceiptURL:     payment.ReceiptURL.Ptr(),
		CreatedAt:      payment.CreatedAt,
		UpdatedAt:      payment.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted payment with its subscription and user
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Subscription").
		Preload("Subscription.Package").
		Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// GetOutstanding finds the unpaid payment for a subscription owned by the user
func (r *PaymentRepository) GetOutstanding(ctx context.Context, subscriptionID, userID uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("subscription_id = ? AND user_id = ? AND is_paid = ? AND is_deleted = ?",
			subscriptionID, userID, false, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// MarkPaid flips is_paid and records the transaction reference in one
// conditional update. The is_paid guard in the WHERE clause makes a second
// confirmation a no-op, reported by the false return.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID, trnID string, receiptURL string) (bool, error) {
	updates := map[string]interface{}{
		"is_paid":    true,
		"trn_id":     trnID,
		"updated_at": time.Now(),
	}
	if receiptURL != "" {
		updates["receipt_url"] = receiptURL
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND is_paid = ? AND is_deleted = ?", id, false, false).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List lists non-deleted payments with their subscriptions
func (r *PaymentRepository) List(ctx context.Context, query *entities.PaymentListQuery) ([]*entities.Payment, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Payment{}).
		Where("is_deleted = ?", false)

	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}
	if query.IsPaid != nil {
		q = q.Where("is_paid = ?", *query.IsPaid)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, paymentSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var paymentModels []models.Payment
	err := q.Preload("Subscription").
		Preload("Subscription.Package").
		Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&paymentModels).Error
	if err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentToEntity(&paymentModels[i]))
	}
	return payments, total, nil
}

// SoftDelete flags a payment as deleted without removing the row
func (r *PaymentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
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

func paymentToEntity(m *models.Payment) *entities.Payment {
	p := &entities.Payment{
		ID:             m.ID,
		SubscriptionID: m.SubscriptionID,
		UserID:         m.UserID,
		Price:          m.Price,
		IsPaid:         m.IsPaid,
		TrnID:          null.StringFromPtr(m.TrnID),
		ReceiptURL:     null.StringFromPtr(m.ReceiptURL),
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Subscription != nil {
		p.Subscription = subscriptionToEntity(m.Subscription)
	}
	if m.User != nil {
		p.User = userModelToEntity(m.User)
	}
	return p
}
