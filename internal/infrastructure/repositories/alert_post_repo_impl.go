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

var alertPostSortColumns = map[string]string{
	"createdAt": "created_at",
}

// AlertPostRepository implements alert post data operations
type AlertPostRepository struct {
	db *gorm.DB
}

// NewAlertPostRepository creates a new alert post repository
func NewAlertPostRepository(db *gorm.DB) *AlertPostRepository {
	return &AlertPostRepository{db: db}
}

// Create creates a new alert post
func (r *AlertPostRepository) Create(ctx context.Context, post *entities.AlertPost) error {
	m := &models.AlertPost{
		ID:          post.ID,
		UserID:      post.UserID,
		Description: post.Description,
		Image:       post.Image.Ptr(),
		Latitude:    post.Location.Latitude,
		Longitude:   post.Location.Longitude,
		Address:     post.Location.Address,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted post owned by the user
func (r *AlertPostRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.AlertPost, error) {
	var m models.AlertPost
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return alertPostToEntity(&m), nil
}

// Update updates alert post fields
func (r *AlertPostRepository) Update(ctx context.Context, post *entities.AlertPost) error {
	updates := map[string]interface{}{
		"description": post.Description,
		"latitude":    post.Location.Latitude,
		"longitude":   post.Location.Longitude,
		"address":     post.Location.Address,
		"updated_at":  time.Now(),
	}
	if post.Image.Valid {
		updates["image"] = post.Image.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AlertPost{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", post.ID, post.UserID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's non-deleted posts with search and pagination
func (r *AlertPostRepository) ListByUser(ctx context.Context, userID uuid.UUID, query *entities.AlertPostListQuery) ([]*entities.AlertPost, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AlertPost{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		q = q.Where("LOWER(description) LIKE ? OR LOWER(address) LIKE ?", term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, alertPostSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var postModels []models.AlertPost
	err := q.Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&postModels).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*entities.AlertPost, 0, len(postModels))
	for i := range postModels {
		posts = append(posts, alertPostToEntity(&postModels[i]))
	}
	return posts, total, nil
}

// SoftDelete flags a post as deleted without removing the row
func (r *AlertPostRepository) SoftDelete(ctx context.Context, id, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.AlertPost{}).
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

func alertPostToEntity(m *models.AlertPost) *entities.AlertPost {
	return &entities.AlertPost{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Image:       null.StringFromPtr(m.Image),
		Location: entities.Location{
			Latitude:  m.Latitude,
			Longitude: m.Longitude,
			Address:   m.Address,
		},
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
