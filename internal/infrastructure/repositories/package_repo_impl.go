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

var packageSortColumns = map[string]string{
	"title":       "title",
	"price":       "price",
	"durationDay": "duration_day",
	"createdAt":   "created_at",
}

// PackageRepository implements package data operations
type PackageRepository struct {
	db *gorm.DB
}

// NewPackageRepository creates a new package repository
func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create creates a new package
func (r *PackageRepository) Create(ctx context.Context, pkg *entities.Package) error {
	m := &models.Package{
		ID:          pkg.ID,
		Title:       pkg.Title,
		Description: pkg.Description,
		Price:       pkg.Price,
		DurationDay: pkg.DurationDay,
		CreatedAt:   pkg.CreatedAt,
		UpdatedAt:   pkg.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted package by ID
func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Package, error) {
	var m models.Package
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return packageToEntity(&m), nil
}

// Update updates package fields
func (r *PackageRepository) Update(ctx context.Context, pkg *entities.Package) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ? AND is_deleted = ?", pkg.ID, false).
		Updates(map[string]interface{}{
			"title":        pkg.Title,
			"description":  pkg.Description,
			"price":        pkg.Price,
			"duration_day": pkg.DurationDay,
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

// List lists non-deleted packages with search and pagination
func (r *PackageRepository) List(ctx context.Context, query *entities.PackageListQuery) ([]*entities.Package, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Package{}).
		Where("is_deleted = ?", false)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, packageSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var packageModels []models.Package
	err := q.Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&packageModels).Error
	if err != nil {
		return nil, 0, err
	}

	packages := make([]*entities.Package, 0, len(packageModels))
	for i := range packageModels {
		packages = append(packages, packageToEntity(&packageModels[i]))
	}
	return packages, total, nil
}

// SoftDelete flags a package as deleted without removing the row
func (r *PackageRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Package{}).
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

func packageToEntity(m *models.Package) *entities.Package {
	return &entities.Package{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		DurationDay: m.DurationDay,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
