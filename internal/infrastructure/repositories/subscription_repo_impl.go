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

var subscriptionSortColumns = map[string]string{
	"createdAt": "created_at",
	"expiredAt": "expired_at",
}

// SubscriptionRepository implements subscription data operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create creates a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entities.Subscription) error {
	m := &models.Subscription{
		ID:         subscription.ID,
		UserID:     subscription.UserID,
		PackageID:  subscription.PackageID,
		IsPaid:     subscription.IsPaid,
		IsActivate: subscription.IsActivate,
		ExpiredAt:  subscription.ExpiredAt.Ptr(),
		CreatedAt:  subscription.CreatedAt,
		UpdatedAt:  subscription.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted subscription with its package and user
func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Package").
		Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return subscriptionToEntity(&m), nil
}

// GetOutstanding finds an unpaid, inactive subscription for the pair so a
// retried request reuses it instead of piling up duplicates
func (r *SubscriptionRepository) GetOutstanding(ctx context.Context, userID, packageID uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND package_id = ? AND is_paid = ? AND is_activate = ? AND is_deleted = ?",
			userID, packageID, false, false, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return subscriptionToEntity(&m), nil
}

// GetActivePaid finds the user's active paid subscription excluding the given id
func (r *SubscriptionRepository) GetActivePaid(ctx context.Context, userID uuid.UUID, excludeID uuid.UUID) (*entities.Subscription, error) {
	var m models.Subscription
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND id <> ? AND is_paid = ? AND is_activate = ? AND is_deleted = ?",
			userID, excludeID, true, true, false).
		Order("expired_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return subscriptionToEntity(&m), nil
}

// Activate marks the subscription paid and active with the given expiry
func (r *SubscriptionRepository) Activate(ctx context.Context, id uuid.UUID, expiredAt time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_paid":     true,
			"is_activate": true,
			"expired_at":  expiredAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Deactivate clears the active flag
func (r *SubscriptionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_activate": false,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeactivateExpired clears the active flag of paid subscriptions past expiry
func (r *SubscriptionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("is_activate = ? AND is_deleted = ? AND expired_at IS NOT NULL AND expired_at <= ?",
			true, false, now).
		Updates(map[string]interface{}{
			"is_activate": false,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Update updates mutable subscription fields
func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entities.Subscription) error {
	updates := map[string]interface{}{
		"is_paid":     subscription.IsPaid,
		"is_activate": subscription.IsActivate,
		"updated_at":  time.Now(),
	}
	if subscription.ExpiredAt.Valid {
		updates["expired_at"] = subscription.ExpiredAt.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("id = ? AND is_deleted = ?", subscription.ID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists non-deleted subscriptions with their packages
func (r *SubscriptionRepository) List(ctx context.Context, query *entities.SubscriptionListQuery) ([]*entities.Subscription, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
		Where("is_deleted = ?", false)

	if query.UserID != nil {
		q = q.Where("user_id = ?", *query.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, subscriptionSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var subscriptionModels []models.Subscription
	err := q.Preload("Package").
		Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&subscriptionModels).Error
	if err != nil {
		return nil, 0, err
	}

	subscriptions := make([]*entities.Subscription, 0, len(subscriptionModels))
	for i := range subscriptionModels {
		subscriptions = append(subscriptions, subscriptionToEntity(&subscriptionModels[i]))
	}
	return subscriptions, total, nil
}

// SoftDelete flags a subscription as deleted without removing the row
func (r *SubscriptionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Subscription{}).
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

func subscriptionToEntity(m *models.Subscription) *entities.Subscription {
	s := &entities.Subscription{
		ID:         m.ID,
		UserID:     m.UserID,
		PackageID:  m.PackageID,
		IsPaid:     m.IsPaid,
		IsActivate: m.IsActivate,
		ExpiredAt:  null.TimeFromPtr(m.ExpiredAt),
		IsDeleted:  m.IsDeleted,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Package != nil {
		s.Package = packageToEntity(m.Package)
	}
	if m.User != nil {
		s.User = userModelToEntity(m.User)
	}
	return s
}
