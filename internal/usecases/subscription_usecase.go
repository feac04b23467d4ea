package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/utils"
)

// SubscriptionUsecase handles subscription lifecycle operations
type SubscriptionUsecase struct {
	subscriptionRepo repositories.SubscriptionRepository
	packageRepo      repositories.PackageRepository
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	subscriptionRepo repositories.SubscriptionRepository,
	packageRepo repositories.PackageRepository,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptionRepo: subscriptionRepo,
		packageRepo:      packageRepo,
	}
}

// Create requests a subscription to a package. An unpaid request for the
// same package is reused so repeated taps do not create duplicates.
func (u *SubscriptionUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateSubscriptionInput) (*entities.Subscription, error) {
	pkg, err := u.packageRepo.GetByID(ctx, input.PackageID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("package not found")
		}
		return nil, err
	}

	existing, err := u.subscriptionRepo.GetOutstanding(ctx, userID, pkg.ID)
	if err == nil {
		existing.Package = pkg
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, err
	}
	subscription := &entities.Subscription{
		ID:        id,
		UserID:    userID,
		PackageID: pkg.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := u.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}
	subscription.Package = pkg
	return subscription, nil
}

// GetByID returns a subscription visible to its owner. Admin roles see all.
func (u *SubscriptionUsecase) GetByID(ctx context.Context, id uuid.UUID, requester *entities.User) (*entities.Subscription, error) {
	subscription, err := u.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("subscription not found")
		}
		return nil, err
	}
	if subscription.UserID != requester.ID && requester.Role == entities.UserRoleUser {
		return nil, domainerrors.Forbidden("subscription belongs to another user")
	}
	return subscription, nil
}

// List lists subscriptions. Regular users only ever see their own.
func (u *SubscriptionUsecase) List(ctx context.Context, query *entities.SubscriptionListQuery, requester *entities.User) ([]*entities.Subscription, int64, error) {
	if requester.Role == entities.UserRoleUser {
		query.UserID = &requester.ID
	}
	return u.subscriptionRepo.List(ctx, query)
}

// Update switches an unpaid subscription request to another package. Paid
// subscriptions are immutable; the payer got what they paid for.
func (u *SubscriptionUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateSubscriptionInput, requester *entities.User) (*entities.Subscription, error) {
	subscription, err := u.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("subscription not found")
		}
		return nil, err
	}
	if subscription.UserID != requester.ID && requester.Role == entities.UserRoleUser {
		return nil, domainerrors.Forbidden("subscription belongs to another user")
	}
	if subscription.IsPaid {
		return nil, domainerrors.BadRequest("paid subscription cannot be changed")
	}

	pkg, err := u.packageRepo.GetByID(ctx, input.PackageID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.BadRequest("package not found")
		}
		return nil, err
	}

	subscription.PackageID = pkg.ID
	subscription.UpdatedAt = time.Now()
	if err := u.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}
	subscription.Package = pkg
	return subscription, nil
}

// SoftDelete removes a subscription from the owner's view
func (u *SubscriptionUsecase) SoftDelete(ctx context.Context, id uuid.UUID, requester *entities.User) error {
	subscription, err := u.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("subscription not found")
		}
		return err
	}
	if subscription.UserID != requester.ID && requester.Role == entities.UserRoleUser {
		return domainerrors.Forbidden("subscription belongs to another user")
	}
	return u.subscriptionRepo.SoftDelete(ctx, id)
}
