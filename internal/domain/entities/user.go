package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSubAdmin   UserRole = "sub_admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// UserStatus represents account status
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User represents a user entity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phoneNumber"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Status       UserStatus  `json:"status"`
	Profile      null.String `json:"profile,omitempty"`
	CustomerID   null.String `json:"-"`
	IsDeleted    bool        `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	Verification *Verification `json:"verification,omitempty"`
}

// CreateUserInput represents input for registering a user
type CreateUserInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
}

// UpdateUserInput represents a partial profile update
type UpdateUserInput struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Profile     *string `json:"profile"`
	Status      *string `json:"status"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult represents a successful authentication
type LoginResult struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordInput represents input for changing a password
type ChangePasswordInput struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPasswordInput represents input for resetting a forgotten password
type ResetPasswordInput struct {
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UserListQuery holds search, filter and pagination for admin user listing
type UserListQuery struct {
	SearchTerm string
	Status     string
	Role       string
	Sort       string
	Page       int
	Limit      int
}
