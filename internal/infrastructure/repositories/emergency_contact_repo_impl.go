package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/infrastructure/models"
	"safealert.backend/pkg/utils"
)

var contactSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

// EmergencyContactRepository implements emergency contact data operations
type EmergencyContactRepository struct {
	db *gorm.DB
}

// NewEmergencyContactRepository creates a new emergency contact repository
func NewEmergencyContactRepository(db *gorm.DB) *EmergencyContactRepository {
	return &EmergencyContactRepository{db: db}
}

// Create creates a new contact
func (r *EmergencyContactRepository) Create(ctx context.Context, contact *entities.EmergencyContact) error {
	m := &models.EmergencyContact{
		ID:          contact.ID,
		UserID:      contact.UserID,
		Name:        contact.Name,
		Relation:    contact.Relation,
		PhoneNumber: contact.PhoneNumber,
		CreatedAt:   contact.CreatedAt,
		UpdatedAt:   contact.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted contact owned by the user
func (r *EmergencyContactRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.EmergencyContact, error) {
	var m models.EmergencyContact
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return contactToEntity(&m), nil
}

// Update updates contact fields
func (r *EmergencyContactRepository) Update(ctx context.Context, contact *entities.EmergencyContact) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.EmergencyContact{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", contact.ID, contact.UserID, false).
		Updates(map[string]interface{}{
			"name":         contact.Name,
			"relation":     contact.Relation,
			"phone_number": contact.PhoneNumber,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's non-deleted contacts with search and pagination
func (r *EmergencyContactRepository) ListByUser(ctx context.Context, userID uuid.UUID, query *entities.EmergencyContactListQuery) ([]*entities.EmergencyContact, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.EmergencyContact{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(relation) LIKE ? OR phone_number LIKE ?",
			term, term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, contactSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var contactModels []models.EmergencyContact
	err := q.Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&contactModels).Error
	if err != nil {
		return nil, 0, err
	}

	contacts := make([]*entities.EmergencyContact, 0, len(contactModels))
	for i := range contactModels {
		contacts = append(contacts, contactToEntity(&contactModels[i]))
	}
	return contacts, total, nil
}

// SoftDelete flags a contact as deleted without removing the row
func (r *EmergencyContactRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.EmergencyContact{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
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

func contactToEntity(m *models.EmergencyContact) *entities.EmergencyContact {
	return &entities.EmergencyContact{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Relation:    m.Relation,
		PhoneNumber: m.PhoneNumber,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
