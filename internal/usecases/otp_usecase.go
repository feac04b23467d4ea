package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/internal/infrastructure/mailer"
	"safealert.backend/pkg/crypto"
	"safealert.backend/pkg/jwt"
	"safealert.backend/pkg/logger"
	"safealert.backend/pkg/metrics"
)

const (
	// SessionTokenTTL is the lifetime of the session token issued after a
	// successful verification
	SessionTokenTTL = 30 * 24 * time.Hour

	// CorrelationTokenTTL binds an emailed code to its verify request
	CorrelationTokenTTL = 3 * time.Minute
)

// ResendLimiter throttles OTP re-issues per user
type ResendLimiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

// OTPUsecase handles one-time passcode issuing and verification
type OTPUsecase struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	jwtService       *jwt.JWTService
	mail             mailer.Sender
	limiter          ResendLimiter
	otpExpiry        time.Duration
}

// NewOTPUsecase creates a new OTP usecase
func NewOTPUsecase(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	jwtService *jwt.JWTService,
	mail mailer.Sender,
	limiter ResendLimiter,
	otpExpiry time.Duration,
) *OTPUsecase {
	if otpExpiry <= 0 {
		otpExpiry = CorrelationTokenTTL
	}
	return &OTPUsecase{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		jwtService:       jwtService,
		mail:             mail,
		limiter:          limiter,
		otpExpiry:        otpExpiry,
	}
}

// Issue arms a fresh code for the user, emails it and returns the
// correlation token the verify call must present. Re-issuing invalidates
// any previously emailed code.
func (u *OTPUsecase) Issue(ctx context.Context, user *entities.User) (string, error) {
	otp, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}

	if err := u.verificationRepo.Arm(ctx, user.ID, otp, time.Now().Add(u.otpExpiry)); err != nil {
		return "", err
	}

	if err := u.mail.SendOTP(user.Email, user.Name, otp); err != nil {
		return "", domainerrors.InternalError(err)
	}

	return u.jwtService.GenerateCorrelationToken(user.ID, user.Email, CorrelationTokenTTL)
}

// IssueRecovery arms a recovery code and emails it, leaving the account's
// verified state untouched. A verified user asking for a password reset
// must still be able to log in.
func (u *OTPUsecase) IssueRecovery(ctx context.Context, user *entities.User) (string, error) {
	otp, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}

	if err := u.verificationRepo.ArmRecovery(ctx, user.ID, otp, time.Now().Add(u.otpExpiry)); err != nil {
		return "", err
	}

	if err := u.mail.SendOTP(user.Email, user.Name, otp); err != nil {
		return "", domainerrors.InternalError(err)
	}

	return u.jwtService.GenerateCorrelationToken(user.ID, user.Email, CorrelationTokenTTL)
}

// Resend re-issues the verification code for an account that has not
// completed verification yet
func (u *OTPUsecase) Resend(ctx context.Context, email string) (string, error) {
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

	if u.limiter != nil {
		allowed, err := u.limiter.Allow(ctx, user.ID.String())
		if err != nil {
			// the limiter is advisory; a redis outage must not block signups
			logger.Warn(ctx, "otp limiter unavailable", zap.Error(err))
		} else if !allowed {
			return "", domainerrors.BadRequest("a code was sent recently, try again shortly")
		}
	}

	return u.Issue(ctx, user)
}

// Verify checks the submitted code against the armed one and, on success,
// consumes it and returns a long-lived session token. A consumed code can
// not verify a second time.
func (u *OTPUsecase) Verify(ctx context.Context, token string, otp int) (string, error) {
	if token == "" {
		metrics.OTPVerifications.WithLabelValues("unauthorized").Inc()
		return "", domainerrors.Unauthorized("verification token is required")
	}

	claims, err := u.jwtService.ValidateCorrelationToken(token)
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("expired_token").Inc()
		return "", domainerrors.SessionExpired("verification session has expired, request a new code")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.OTPVerifications.WithLabelValues("not_found").Inc()
			return "", domainerrors.NotFound("user not found")
		}
		return "", err
	}

	verification, err := u.verificationRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			metrics.OTPVerifications.WithLabelValues("not_found").Inc()
			return "", domainerrors.NotFound("no verification is pending for this account")
		}
		return "", err
	}

	if !verification.ExpiredAt.Valid || time.Now().After(verification.ExpiredAt.Time) {
		metrics.OTPVerifications.WithLabelValues("expired_otp").Inc()
		return "", domainerrors.SessionExpired("the code has expired, request a new one")
	}

	if verification.OTP == entities.OTPConsumedSentinel || verification.OTP != otp {
		metrics.OTPVerifications.WithLabelValues("mismatch").Inc()
		return "", domainerrors.BadRequest("the code did not match")
	}

	if err := u.verificationRepo.Consume(ctx, user.ID); err != nil {
		return "", err
	}

	metrics.OTPVerifications.WithLabelValues("success").Inc()
	return u.jwtService.GenerateSessionToken(user.ID, user.Email, string(user.Role), SessionTokenTTL)
}
