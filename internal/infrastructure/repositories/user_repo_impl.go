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

var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Status:       string(user.Status),
		Profile:      user.Profile.Ptr(),
		CustomerID:   user.CustomerID.Ptr(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a non-deleted user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Verification").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email. Soft-deleted users are still returned
// so the caller can distinguish a deleted account from a missing one.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Verification").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":         user.Name,
		"phone_number": user.PhoneNumber,
		"status":       string(user.Status),
		"updated_at":   time.Now(),
	}
	if user.Profile.Valid {
		updates["profile"] = user.Profile.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", user.ID, false).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetCustomerID stores the billing customer reference assigned at first checkout
func (r *UserRepository) SetCustomerID(ctx context.Context, id uuid.UUID, customerID string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": customerID,
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

// List lists non-deleted users with search, filters and pagination
func (r *UserRepository) List(ctx context.Context, query *entities.UserListQuery) ([]*entities.User, int64, error) {
	q := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("is_deleted = ?", false)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Role != "" {
		q = q.Where("role = ?", query.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range utils.ParseSort(query.Sort, userSortColumns) {
		q = q.Order(clause)
	}
	q = q.Order("created_at DESC")

	var userModels []models.User
	err := q.Offset(utils.CalculateOffset(query.Page, query.Limit)).
		Limit(query.Limit).
		Find(&userModels).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, r.toEntity(&userModels[i]))
	}
	return users, total, nil
}

// SoftDelete flags a user as deleted without removing the row
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
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

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return userModelToEntity(m)
}

func userModelToEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		Status:       entities.UserStatus(m.Status),
		Profile:      null.StringFromPtr(m.Profile),
		CustomerID:   null.StringFromPtr(m.CustomerID),
		IsDeleted:    m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Verification != nil {
		u.Verification = verificationToEntity(m.Verification)
	}
	return u
}

// LoginDeviceRepository implements append-only login fingerprint storage
type LoginDeviceRepository struct {
	db *gorm.DB
}

// NewLoginDeviceRepository creates a new login device repository
func NewLoginDeviceRepository(db *gorm.DB) *LoginDeviceRepository {
	return &LoginDeviceRepository{db: db}
}

// Create records a login fingerprint
func (r *LoginDeviceRepository) Create(ctx context.Context, device *entities.LoginDevice) error {
	m := &models.LoginDevice{
		ID:        device.ID,
		UserID:    device.UserID,
		IP:        device.IP,
		Browser:   device.Browser,
		OS:        device.OS,
		Device:    device.Device,
		CreatedAt: device.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByUser lists a user's login history, newest first
func (r *LoginDeviceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.LoginDevice, error) {
	var deviceModels []models.LoginDevice
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deviceModels).Error
	if err != nil {
		return nil, err
	}

	devices := make([]*entities.LoginDevice, 0, len(deviceModels))
	for i := range deviceModels {
		m := deviceModels[i]
		devices = append(devices, &entities.LoginDevice{
			ID:        m.ID,
			UserID:    m.UserID,
			IP:        m.IP,
			Browser:   m.Browser,
			OS:        m.OS,
			Device:    m.Device,
			CreatedAt: m.CreatedAt,
		})
	}
	return devices, nil
}
