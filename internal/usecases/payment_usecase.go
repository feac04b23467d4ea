package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/domain/repositories"
	"safealert.backend/internal/infrastructure/stripe"
	"safealert.backend/pkg/logger"
	"safealert.backend/pkg/metrics"
	"safealert.backend/pkg/utils"
)

// BillingClient is the slice of the billing API the payment flow uses
type BillingClient interface {
	CreateCustomer(ctx context.Context, name, email string) (*stripe.Customer, error)
	CreateCheckoutSession(ctx context.Context, params stripe.CheckoutSessionParams) (*stripe.Session, error)
	GetSession(ctx context.Context, sessionID string) (*stripe.Session, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error)
}

// PaymentUsecase handles checkout and payment confirmation
type PaymentUsecase struct {
	uow              repositories.UnitOfWork
	paymentRepo      repositories.PaymentRepository
	subscriptionRepo repositories.SubscriptionRepository
	userRepo         repositories.UserRepository
	billing          BillingClient
	baseURL          string
	currency         string
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	uow repositories.UnitOfWork,
	paymentRepo repositories.PaymentRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	userRepo repositories.UserRepository,
	billing BillingClient,
	baseURL string,
	currency string,
) *PaymentUsecase {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentUsecase{
		uow:              uow,
		paymentRepo:      paymentRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		billing:          billing,
		baseURL:          baseURL,
		currency:         currency,
	}
}

// Checkout starts a hosted checkout for the subscription and returns the
// redirect URL. An outstanding unpaid payment for the subscription is
// reused so retried checkouts do not pile up rows.
func (u *PaymentUsecase) Checkout(ctx context.Context, userID uuid.UUID, input *entities.CheckoutInput) (string, error) {
	subscription, err := u.subscriptionRepo.GetByID(ctx, input.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.BadRequest("subscription not found")
		}
		return "", err
	}
	if subscription.UserID != userID {
		return "", domainerrors.Forbidden("subscription belongs to another user")
	}
	if subscription.Package == nil {
		return "", domainerrors.BadRequest("subscription has no package")
	}

	payment, err := u.paymentRepo.GetOutstanding(ctx, subscription.ID, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		id, idErr := utils.GenerateUUIDv7()
		if idErr != nil {
			return "", idErr
		}
		payment = &entities.Payment{
			ID:             id,
			SubscriptionID: subscription.ID,
			UserID:         userID,
			Price:          subscription.Package.Price,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		if err := u.paymentRepo.Create(ctx, payment); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	customerID, err := u.ensureCustomer(ctx, subscription.User, userID)
	if err != nil {
		return "", err
	}

	session, err := u.billing.CreateCheckoutSession(ctx, stripe.CheckoutSessionParams{
		CustomerID:  customerID,
		ProductName: subscription.Package.Title,
		Amount:      payment.Price,
		Currency:    u.currency,
		Quantity:    1,
		SuccessURL:  fmt.Sprintf("%s/api/v1/payments/confirm-payment?paymentId=%s&sessionId={CHECKOUT_SESSION_ID}", u.baseURL, payment.ID),
		// a cancelled checkout lands on the same endpoint; the unpaid
		// session is reported there without touching any state
		CancelURL:   fmt.Sprintf("%s/api/v1/payments/confirm-payment?paymentId=%s&sessionId={CHECKOUT_SESSION_ID}", u.baseURL, payment.ID),
		ReferenceID: payment.ID.String(),
	})
	if err != nil {
		return "", domainerrors.InternalError(err)
	}

	return session.URL, nil
}

// ConfirmPayment reconciles the checkout session with the payment row and
// activates the subscription. The whole mutation runs in one transaction;
// the conditional flip of is_paid makes concurrent confirmations of the
// same payment settle exactly once.
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, sessionID string, paymentID uuid.UUID) (*entities.ConfirmPaymentResult, error) {
	session, err := u.billing.GetSession(ctx, sessionID)
	if err != nil {
		metrics.PaymentConfirmations.WithLabelValues("session_error").Inc()
		return nil, domainerrors.InternalError(err)
	}
	if !session.Paid() {
		metrics.PaymentConfirmations.WithLabelValues("incomplete").Inc()
		return nil, domainerrors.NewAppError(http.StatusPaymentRequired, domainerrors.CodeBadRequest, "payment session is not completed", domainerrors.ErrSessionIncomplete)
	}

	charge, err := u.chargeDetails(ctx, session)
	if err != nil {
		return nil, err
	}
	// a refunded charge keeps status "succeeded", only the flag tells
	if charge.Refunded {
		metrics.PaymentConfirmations.WithLabelValues("refunded").Inc()
		return nil, domainerrors.BadRequest("payment has been refunded")
	}

	var result *entities.ConfirmPaymentResult
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		payment, err := u.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("payment not found")
			}
			return err
		}
		if payment.Subscription == nil || payment.Subscription.Package == nil {
			return domainerrors.NotFound("payment has no subscription")
		}
		subscription := payment.Subscription
		pkg := subscription.Package

		flipped, err := u.paymentRepo.MarkPaid(txCtx, payment.ID, charge.TransactionID, charge.ReceiptURL)
		if err != nil {
			return err
		}
		if !flipped {
			return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, "payment already confirmed", domainerrors.ErrAlreadyConfirmed)
		}

		expiry := u.stackedExpiry(txCtx, subscription, pkg)
		if err := u.subscriptionRepo.Activate(txCtx, subscription.ID, expiry); err != nil {
			return err
		}

		// only one subscription stays active per user
		if prior, err := u.subscriptionRepo.GetActivePaid(txCtx, subscription.UserID, subscription.ID); err == nil {
			if err := u.subscriptionRepo.Deactivate(txCtx, prior.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		confirmed, err := u.paymentRepo.GetByID(txCtx, payment.ID)
		if err != nil {
			return err
		}
		result = &entities.ConfirmPaymentResult{
			Payment:       confirmed,
			Subscription:  confirmed.Subscription,
			Package:       pkg,
			ChargeDetails: *charge,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyConfirmed) {
			metrics.PaymentConfirmations.WithLabelValues("duplicate").Inc()
		} else {
			metrics.PaymentConfirmations.WithLabelValues("failed").Inc()
		}
		return nil, err
	}

	metrics.PaymentConfirmations.WithLabelValues("success").Inc()
	return result, nil
}

// GetByID returns a payment visible to its owner
func (u *PaymentUsecase) GetByID(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("payment not found")
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainerrors.Forbidden("payment belongs to another user")
	}
	return payment, nil
}

// List lists a user's payments
func (u *PaymentUsecase) List(ctx context.Context, query *entities.PaymentListQuery) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.List(ctx, query)
}

// stackedExpiry applies the renewal rule: when another paid subscription is
// still running, the new period begins at its expiry; otherwise it begins
// now.
func (u *PaymentUsecase) stackedExpiry(ctx context.Context, subscription *entities.Subscription, pkg *entities.Package) time.Time {
	base := time.Now()
	if prior, err := u.subscriptionRepo.GetActivePaid(ctx, subscription.UserID, subscription.ID); err == nil {
		if prior.ExpiredAt.Valid && prior.ExpiredAt.Time.After(base) {
			base = prior.ExpiredAt.Time
		}
	}
	return base.AddDate(0, 0, pkg.DurationDay)
}

func (u *PaymentUsecase) ensureCustomer(ctx context.Context, user *entities.User, userID uuid.UUID) (string, error) {
	if user == nil {
		loaded, err := u.userRepo.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		user = loaded
	}
	if user.CustomerID.Valid && user.CustomerID.String != "" {
		return user.CustomerID.String, nil
	}

	customer, err := u.billing.CreateCustomer(ctx, user.Name, user.Email)
	if err != nil {
		return "", domainerrors.InternalError(err)
	}
	if err := u.userRepo.SetCustomerID(ctx, user.ID, customer.ID); err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (u *PaymentUsecase) chargeDetails(ctx context.Context, session *stripe.Session) (*entities.ChargeDetails, error) {
	details := &entities.ChargeDetails{
		Amount:      session.AmountTotal,
		Currency:    session.Currency,
		Status:      session.PaymentStatus,
		PaymentDate: time.Now(),
	}
	if session.PaymentIntentID == "" {
		return details, nil
	}

	intent, err := u.billing.GetPaymentIntent(ctx, session.PaymentIntentID)
	if err != nil {
		// receipt enrichment is optional, the session already proves payment
		logger.Warn(ctx, "failed to load payment intent", zap.Error(err))
		details.TransactionID = session.PaymentIntentID
		return details, nil
	}

	details.TransactionID = intent.ID
	details.Status = intent.Status
	if intent.LatestCharge != nil {
		details.TransactionID = intent.LatestCharge.ID
		details.Status = intent.LatestCharge.Status
		details.Refunded = intent.LatestCharge.Refunded
		details.CardLast4 = intent.LatestCharge.PaymentMethodDetails.Card.Last4
		details.ReceiptURL = intent.LatestCharge.ReceiptURL
		if intent.LatestCharge.Created > 0 {
			details.PaymentDate = time.Unix(intent.LatestCharge.Created, 0)
		}
	}
	return details, nil
}
