package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/infrastructure/models"
	"safealert.backend/pkg/utils"
)

var safeZoneSortColumns = map[string]string{
	"createdAt":      "created_at",
	"expectedReturn": "expected_return",
}

// SafeZoneRepository implements safe zone data operations
type SafeZoneRepository struct {
	db *gorm.DB
}

// NewSafeZoneRepository creates a new safe zone repository
func NewSafeZoneRepository(db *gorm.DB) *SafeZoneRepository {
	return &SafeZoneRepository{db: db}
}

// Create creates a new safe zone
func (r *SafeZoneRepository) Create(ctx context.Context, zone *entities.SafeZone) error {
	m := &models.SafeZone{
		ID:             zone.ID,
		UserID:         zone.UserID,
		Description:    zone.Description,
		StartLatitude:  zone.StartLocation.Latitude,
		StartLongitude: zone.StartLocation.Longitude,
		StartAddress:   zone.StartLocation.Address,
		EndLatitude:    zone.EndLocation.Latitude,
		EndLongitude:   zone.EndLocation.Longitude,
		EndAddress:     zone.EndLocation.Address,
		ExpectedReturn: zone.ExpectedReturn.Ptr(),
		CreatedAt:      zone.CreatedAt,
		UpdatedAt:      zone.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted zone owned by the user
func (r *SafeZoneRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.SafeZone, error) {
	var m models.SafeZone
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return safeZoneToEntity(&m), nil
}

// Update updates safe zone fields
func (r *SafeZoneRepository) Update(ctx context.Context, zone *entities.SafeZone) error {
	updates := map[string]interface{}{
		"description":     zone.Description,
		"start_latitude":  zone.StartLocation.Latitude,
		"start_longitude": zone.StartLocation.Longitude,
		"start_address":   zone.StartLocation.Address,
		"end_latitude":    zone.EndLocation.Latitude,
		"end_longitude":   zone.EndLocation.Longitude,
		"end_address":     zone.EndLocation.Address,
		"updated_at":      time.Now(),
	}
	if zone.ExpectedReturn.Valid {
		updates["expected_return"] = zone.ExpectedReturn.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SafeZone{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", zone.ID, zone.UserID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's non-deleted zones with search and pagination
func (r *SafeZoneRepository) ListByUser(ctx context.Context, userID uuid.UUID, query *entities.SafeZoneListQuery) ([]*entities.SafeZone, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SafeZone{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(start_address) LIKE ? OR LOWER(end_address) LIKE ?",
			term, term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, safeZoneSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var zoneModels []models.SafeZone
	err := q.Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&zoneModels).Error
	if err != nil {
		return nil, 0, err
	}

	zones := make([]*entities.SafeZone, 0, len(zoneModels))
	for i := range zoneModels {
		zones = append(zones, safeZoneToEntity(&zoneModels[i]))
	}
	return zones, total, nil
}

// SoftDelete flags a zone as deleted without removing the row
func (r *SafeZoneRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.SafeZone{}).
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

func safeZoneToEntity(m *models.SafeZone) *entities.SafeZone {
	return &entities.SafeZone{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		StartLocation: entities.Location{
			Latitude:  m.StartLatitude,
			Longitude: m.StartLongitude,
			Address:   m.StartAddress,
		},
		EndLocation: entities.Location{
			Latitude:  m.EndLatitude,
			Longitude: m.EndLongitude,
			Address:   m.EndAddress,
		},
		ExpectedReturn: null.TimeFromPtr(m.ExpectedReturn),
		IsDeleted:      m.IsDeleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
