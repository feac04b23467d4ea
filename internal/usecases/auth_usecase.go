package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.uber.org/zap"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/pkg/crypto"
	"safealert.backend/pkg/jwt"
	"safealert.backend/pkg/logger"
	"safealert.backend/pkg/metrics"
	"safealert.backend/pkg/utils"
)

// AuthUsecase handles registration, authentication and credential recovery
type AuthUsecase struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	deviceRepo       repositories.LoginDeviceRepository
	jwtService       *jwt.JWTService
	otp              *OTPUsecase
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	deviceRepo repositories.LoginDeviceRepository,
	jwtService *jwt.JWTService,
	otp *OTPUsecase,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		deviceRepo:       deviceRepo,
		jwtService:       jwtService,
		otp:              otp,
	}
}

// Register creates an unverified account and emails its first code. An
// existing unverified account is overwritten in place so an abandoned
// signup can be retried with the same email.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, "", err
	}

	if existing != nil {
		if existing.IsDeleted {
			return nil, "", domainerrors.Forbidden("account has been deleted")
		}
		if existing.Status == entities.UserStatusBlocked {
			return nil, "", domainerrors.Forbidden("account is blocked")
		}
		if existing.Verification != nil && existing.Verification.Status {
			return nil, "", domainerrors.Conflict("an account with this email already exists")
		}

		// unverified signup retried: refresh the profile and re-issue the code
		passwordHash, err := crypto.HashPassword(input.Password)
		if err != nil {
			return nil, "", err
		}
		existing.Name = input.Name
		existing.PhoneNumber = input.PhoneNumber
		if err := u.userRepo.Update(ctx, existing); err != nil {
			return nil, "", err
		}
		if err := u.userRepo.UpdatePassword(ctx, existing.ID, passwordHash); err != nil {
			return nil, "", err
		}

		token, err := u.otp.Issue(ctx, existing)
		if err != nil {
			return nil, "", err
		}
		return existing, token, nil
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	id, err := utils.GenerateUUIDv7()
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		ID:           id,
		Name:         input.Name,
		Email:        email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleUser,
		Status:       entities.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.otp.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a verified account and returns an access/refresh
// pair. Gates fire in a fixed order: unknown email, deleted account, wrong
// password, unverified account.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput, ip, userAgent string) (*entities.LoginResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.Logins.WithLabelValues("not_found").Inc()
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}

	if user.IsDeleted {
		metrics.Logins.WithLabelValues("deleted").Inc()
		return nil, domainerrors.Forbidden("account has been deleted")
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		metrics.Logins.WithLabelValues("bad_password").Inc()
		return nil, domainerrors.BadRequest("password did not match")
	}

	if user.Verification == nil || !user.Verification.Status {
		metrics.Logins.WithLabelValues("unverified").Inc()
		return nil, domainerrors.Forbidden("account is not verified")
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	u.recordLoginDevice(ctx, user.ID, ip, userAgent)

	metrics.Logins.WithLabelValues("success").Inc()
	return &entities.LoginResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
// The refresh token itself is not rotated.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return "", domainerrors.SessionExpired("session has expired, log in again")
		}
		return "", domainerrors.Unauthorized("invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.Unauthorized("account no longer exists")
		}
		return "", err
	}

	return u.jwtService.GenerateAccessToken(user.ID, string(user.Role))
}

// ChangePassword replaces the password of a logged-in user. Gates fire in
// a fixed order: unknown user, wrong current password, confirm mismatch.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}

	if !crypto.CheckPassword(input.OldPassword, user.PasswordHash) {
		return domainerrors.Forbidden("current password did not match")
	}

	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.BadRequest("passwords did not match")
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// ForgotPassword arms a recovery code for the account and emails it. The
// returned token correlates the subsequent verify and reset calls.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.NotFound("user not found")
		}
		return "", err
	}
	if user.IsDeleted {
		return "", domainerrors.Forbidden("account has been deleted")
	}
	if user.Status == entities.UserStatusBlocked {
		return "", domainerrors.Forbidden("account is blocked")
	}

	return u.otp.IssueRecovery(ctx, user)
}

// ResetPassword sets a new password for a verified account holding a live
// recovery token. The armed recovery code's expiry bounds the window; a
// reset after it lapses is refused.
func (u *AuthUsecase) ResetPassword(ctx context.Context, token string, input *entities.ResetPasswordInput) error {
	if token == "" {
		return domainerrors.Unauthorized("reset token is required")
	}

	claims, err := u.jwtService.ValidateCorrelationToken(token)
	if err != nil {
		return domainerrors.SessionExpired("reset session has expired, request a new code")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return err
	}

	verification, err := u.verificationRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("no verification is pending for this account")
		}
		return err
	}
	if !verification.ExpiredAt.Valid || time.Now().After(verification.ExpiredAt.Time) {
		return domainerrors.Forbidden("reset window has expired, request a new code")
	}
	if !verification.Status {
		return domainerrors.Forbidden("verify the emailed code before resetting the password")
	}

	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.BadRequest("passwords did not match")
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}
	// spend the recovery code so the same token cannot reset twice
	return u.verificationRepo.Consume(ctx, user.ID)
}

func (u *AuthUsecase) recordLoginDevice(ctx context.Context, userID uuid.UUID, ip, rawUA string) {
	id, err := utils.GenerateUUIDv7()
	if err != nil {
		logger.Warn(ctx, "failed to generate login device id", zap.Error(err))
		return
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	device := "desktop"
	if ua.Mobile() {
		device = "mobile"
	}

	entry := &entities.LoginDevice{
		ID:        id,
		UserID:    userID,
		IP:        ip,
		Browser:   browser,
		OS:        ua.OS(),
		Device:    device,
		CreatedAt: time.Now(),
	}
	// login history is best effort, a write failure must not fail the login
	if err := u.deviceRepo.Create(ctx, entry); err != nil {
		logger.Warn(ctx, "failed to record login device", zap.Error(err))
	}
}
