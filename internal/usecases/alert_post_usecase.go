package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/utils"
)

// AlertPostUsecase handles distress alert posts
type AlertPostUsecase struct {
	postRepo repositories.AlertPostRepository
}

// NewAlertPostUsecase creates a new alert post usecase
func NewAlertPostUsecase(postRepo repositories.AlertPostRepository) *AlertPostUsecase {
	return &AlertPostUsecase{postRepo: postRepo}
}

// Create posts an alert for the user
func (u *AlertPostUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateAlertPostInput) (*entities.AlertPost, error) {
	if !validLocation(input.Location) {
		return nil, domainerrors.BadRequest("coordinates are out of range")
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, err
	}
	post := &entities.AlertPost{
		ID:          id,
		UserID:      userID,
		Description: input.Description,
		Location:    input.Location,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.Image != "" {
		post.Image = null.StringFrom(input.Image)
	}
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetByID returns a post owned by the user
func (u *AlertPostUsecase) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.AlertPost, error) {
	post, err := u.postRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("alert post not found")
		}
		return nil, err
	}
	return post, nil
}

// Update applies a partial update to a post owned by the user
func (u *AlertPostUsecase) Update(ctx context.Context, id, userID uuid.UUID, input *entities.UpdateAlertPostInput) (*entities.AlertPost, error) {
	post, err := u.postRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("alert post not found")
		}
		return nil, err
	}

	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.Image != nil {
		post.Image = null.StringFrom(*input.Image)
	}
	if input.Location != nil {
		if !validLocation(*input.Location) {
			return nil, domainerrors.BadRequest("coordinates are out of range")
		}
		post.Location = *input.Location
	}

	if err := u.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List lists the user's posts
func (u *AlertPostUsecase) List(ctx context.Context, userID uuid.UUID, query *entities.AlertPostListQuery) ([]*entities.AlertPost, int64, error) {
	return u.postRepo.ListByUser(ctx, userID, query)
}

// SoftDelete removes a post owned by the user
func (u *AlertPostUsecase) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.postRepo.SoftDelete(ctx, id, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("alert post not found")
		}
		return err
	}
	return nil
}
