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

// EmergencyContactUsecase handles a user's emergency contact book
type EmergencyContactUsecase struct {
	contactRepo repositories.EmergencyContactRepository
}

// NewEmergencyContactUsecase creates a new emergency contact usecase
func NewEmergencyContactUsecase(contactRepo repositories.EmergencyContactRepository) *EmergencyContactUsecase {
	return &EmergencyContactUsecase{contactRepo: contactRepo}
}

// Create adds a contact for the user
func (u *EmergencyContactUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateEmergencyContactInput) (*entities.EmergencyContact, error) {
	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, err
	}
	contact := &entities.EmergencyContact{
		ID:          id,
		UserID:      userID,
		Name:        input.Name,
		Relation:    input.Relation,
		PhoneNumber: input.PhoneNumber,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := u.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetByID returns a contact owned by the user
func (u *EmergencyContactUsecase) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.EmergencyContact, error) {
	contact, err := u.contactRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("emergency contact not found")
		}
		return nil, err
	}
	return contact, nil
}

// Update applies a partial update to a contact owned by the user
func (u *EmergencyContactUsecase) Update(ctx context.Context, id, userID uuid.UUID, input *entities.UpdateEmergencyContactInput) (*entities.EmergencyContact, error) {
	contact, err := u.contactRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("emergency contact not found")
		}
		return nil, err
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Relation != nil {
		contact.Relation = *input.Relation
	}
	if input.PhoneNumber != nil {
		contact.PhoneNumber = *input.PhoneNumber
	}

	if err := u.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List lists the user's contacts
func (u *EmergencyContactUsecase) List(ctx context.Context, userID uuid.UUID, query *entities.EmergencyContactListQuery) ([]*entities.EmergencyContact, int64, error) {
	return u.contactRepo.ListByUser(ctx, userID, query)
}

// SoftDelete removes a contact owned by the user
func (u *EmergencyContactUsecase) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.contactRepo.SoftDelete(ctx, id, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("emergency contact not found")
		}
		return err
	}
	return nil
}
