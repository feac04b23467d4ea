package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
)

// UserUsecase handles profile and admin user management
type UserUsecase struct {
	userRepo   repositories.UserRepository
	deviceRepo repositories.LoginDeviceRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository, deviceRepo repositories.LoginDeviceRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, deviceRepo: deviceRepo}
}

// GetByID returns a user profile
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial profile update
func (u *UserUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateUserInput, requester *entities.User) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Profile != nil {
		user.Profile = null.StringFrom(*input.Profile)
	}
	if input.Status != nil {
		// only admins may block or unblock accounts
		if requester.Role == entities.UserRoleUser {
			return nil, domainerrors.Forbidden("not allowed to change account status")
		}
		switch entities.UserStatus(*input.Status) {
		case entities.UserStatusActive, entities.UserStatusBlocked:
			user.Status = entities.UserStatus(*input.Status)
		default:
			return nil, domainerrors.BadRequest("unknown status")
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List lists non-admin accounts for the admin panel
func (u *UserUsecase) List(ctx context.Context, query *entities.UserListQuery) ([]*entities.User, int64, error) {
	if query.Role == "" {
		query.Role = string(entities.UserRoleUser)
	}
	return u.userRepo.List(ctx, query)
}

// SoftDelete removes an account. Users can delete themselves, admins anyone.
func (u *UserUsecase) SoftDelete(ctx context.Context, id uuid.UUID, requester *entities.User) error {
	if id != requester.ID && requester.Role == entities.UserRoleUser {
		return domainerrors.Forbidden("not allowed to delete another account")
	}
	if err := u.userRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}
	return nil
}

// LoginDevices returns the login history of a user
func (u *UserUsecase) LoginDevices(ctx context.Context, userID uuid.UUID) ([]*entities.LoginDevice, error) {
	return u.deviceRepo.ListByUser(ctx, userID)
}
