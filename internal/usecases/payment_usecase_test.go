package usecases_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/infrastructure/stripe"
	"safealert.backend/internal/usecases"
)

type paymentFixture struct {
	uc               *usecases.PaymentUsecase
	uow              *MockUnitOfWork
	paymentRepo      *MockPaymentRepository
	subscriptionRepo *MockSubscriptionRepository
	userRepo         *MockUserRepository
	billing          *MockBillingClient
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		uow:              new(MockUnitOfWork),
		paymentRepo:      new(MockPaymentRepository),
		subscriptionRepo: new(MockSubscriptionRepository),
		userRepo:         new(MockUserRepository),
		billing:          new(MockBillingClient),
	}
	f.uc = usecases.NewPaymentUsecase(f.uow, f.paymentRepo, f.subscriptionRepo, f.userRepo, f.billing,
		"https://api.safealert.app", "usd")
	return f
}

func subscriptionWithPackage(userID uuid.UUID, durationDay int) *entities.Subscription {
	pkg := &entities.Package{
		ID:          uuid.New(),
		Title:       "Guardian Monthly",
		Price:       999,
		DurationDay: durationDay,
	}
	user := &entities.User{
		ID:         userID,
		Name:       "Jane Roe",
		Email:      "jane@example.com",
		CustomerID: null.StringFrom("cus_existing"),
	}
	return &entities.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		PackageID: pkg.ID,
		Package:   pkg,
		User:      user,
	}
}

func paidSession(id string) *stripe.Session {
	return &stripe.Session{
		ID:              id,
		PaymentStatus:   "paid",
		Status:          "complete",
		PaymentIntentID: "pi_1",
		AmountTotal:     999,
		Currency:        "usd",
	}
}

func settledIntent() *stripe.PaymentIntent {
	intent := &stripe.PaymentIntent{
		ID:       "pi_1",
		Amount:   999,
		Currency: "usd",
		Status:   "succeeded",
		LatestCharge: &stripe.Charge{
			ID:         "ch_1",
			Amount:     999,
			Currency:   "usd",
			Status:     "succeeded",
			ReceiptURL: "https://pay.example.com/receipts/ch_1",
			Created:    time.Now().Unix(),
		},
	}
	intent.LatestCharge.PaymentMethodDetails.Card.Last4 = "4242"
	return intent
}

func TestPaymentUsecase_CheckoutUnknownSubscription(t *testing.T) {
	f := newPaymentFixture()
	f.subscriptionRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.Checkout(context.Background(), uuid.New(), &entities.CheckoutInput{SubscriptionID: uuid.New()})
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)
}

func TestPaymentUsecase_CheckoutForeignSubscription(t *testing.T) {
	f := newPaymentFixture()
	sub := subscriptionWithPackage(uuid.New(), 30)
	f.subscriptionRepo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)

	_, err := f.uc.Checkout(context.Background(), uuid.New(), &entities.CheckoutInput{SubscriptionID: sub.ID})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPaymentUsecase_CheckoutReusesOutstandingPayment(t *testing.T) {
	f := newPaymentFixture()
	userID := uuid.New()
	sub := subscriptionWithPackage(userID, 30)
	outstanding := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         userID,
		Price:          999,
	}

	f.subscriptionRepo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)
	f.paymentRepo.On("GetOutstanding", mock.Anything, sub.ID, userID).Return(outstanding, nil)
	f.billing.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p stripe.CheckoutSessionParams) bool {
		// both redirects land on the registered confirm endpoint
		return p.CustomerID == "cus_existing" &&
			p.Amount == 999 &&
			p.ReferenceID == outstanding.ID.String() &&
			strings.Contains(p.SuccessURL, "/api/v1/payments/confirm-payment") &&
			strings.Contains(p.CancelURL, "/api/v1/payments/confirm-payment")
	})).Return(&stripe.Session{ID: "cs_1", URL: "https://checkout.example.com/cs_1"}, nil)

	url, err := f.uc.Checkout(context.Background(), userID, &entities.CheckoutInput{SubscriptionID: sub.ID})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.example.com/cs_1", url)

	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.billing.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CheckoutCreatesPaymentAndCustomer(t *testing.T) {
	f := newPaymentFixture()
	userID := uuid.New()
	sub := subscriptionWithPackage(userID, 30)
	sub.User.CustomerID = null.String{}

	f.subscriptionRepo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)
	f.paymentRepo.On("GetOutstanding", mock.Anything, sub.ID, userID).Return(nil, domainerrors.ErrNotFound)

	var created *entities.Payment
	f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Payment")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.Payment)
		}).Return(nil)

	f.billing.On("CreateCustomer", mock.Anything, "Jane Roe", "jane@example.com").
		Return(&stripe.Customer{ID: "cus_new"}, nil)
	f.userRepo.On("SetCustomerID", mock.Anything, userID, "cus_new").Return(nil)
	f.billing.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p stripe.CheckoutSessionParams) bool {
		return p.CustomerID == "cus_new"
	})).Return(&stripe.Session{ID: "cs_2", URL: "https://checkout.example.com/cs_2"}, nil)

	url, err := f.uc.Checkout(context.Background(), userID, &entities.CheckoutInput{SubscriptionID: sub.ID})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.example.com/cs_2", url)

	require.NotNil(t, created)
	require.EqualValues(t, 999, created.Price)
	require.Equal(t, sub.ID, created.SubscriptionID)
	f.userRepo.AssertCalled(t, "SetCustomerID", mock.Anything, userID, "cus_new")
}

func TestPaymentUsecase_ConfirmIncompleteSessionMutatesNothing(t *testing.T) {
	f := newPaymentFixture()
	f.billing.On("GetSession", mock.Anything, "cs_open").
		Return(&stripe.Session{ID: "cs_open", PaymentStatus: "unpaid", Status: "open"}, nil)

	_, err := f.uc.ConfirmPayment(context.Background(), "cs_open", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrSessionIncomplete)

	f.uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	f.paymentRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ConfirmRefundedCharge(t *testing.T) {
	f := newPaymentFixture()
	// the real API leaves status "succeeded" and flips only the flag
	intent := settledIntent()
	intent.LatestCharge.Refunded = true

	f.billing.On("GetSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	f.billing.On("GetPaymentIntent", mock.Anything, "pi_1").Return(intent, nil)

	_, err := f.uc.ConfirmPayment(context.Background(), "cs_1", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)
	f.uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ConfirmSecondConfirmationLoses(t *testing.T) {
	f := newPaymentFixture()
	userID := uuid.New()
	sub := subscriptionWithPackage(userID, 30)
	payment := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         userID,
		Price:          999,
		IsPaid:         true,
		Subscription:   sub,
	}

	f.billing.On("GetSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	f.billing.On("GetPaymentIntent", mock.Anything, "pi_1").Return(settledIntent(), nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	f.paymentRepo.On("MarkPaid", mock.Anything, payment.ID, "ch_1", "https://pay.example.com/receipts/ch_1").
		Return(false, nil)

	_, err := f.uc.ConfirmPayment(context.Background(), "cs_1", payment.ID)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyConfirmed)

	f.subscriptionRepo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ConfirmFreshStartExpiresFromNow(t *testing.T) {
	f := newPaymentFixture()
	userID := uuid.New()
	sub := subscriptionWithPackage(userID, 30)
	payment := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         userID,
		Price:          999,
		Subscription:   sub,
	}

	f.billing.On("GetSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	f.billing.On("GetPaymentIntent", mock.Anything, "pi_1").Return(settledIntent(), nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	f.paymentRepo.On("MarkPaid", mock.Anything, payment.ID, "ch_1", "https://pay.example.com/receipts/ch_1").
		Return(true, nil)
	f.subscriptionRepo.On("GetActivePaid", mock.Anything, userID, sub.ID).Return(nil, domainerrors.ErrNotFound)

	var expiry time.Time
	f.subscriptionRepo.On("Activate", mock.Anything, sub.ID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			expiry = args.Get(2).(time.Time)
		}).Return(nil)

	result, err := f.uc.ConfirmPayment(context.Background(), "cs_1", payment.ID)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 30), expiry, 5*time.Second)
	require.Equal(t, "4242", result.ChargeDetails.CardLast4)
	require.Equal(t, "ch_1", result.ChargeDetails.TransactionID)

	f.subscriptionRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_ConfirmStacksOnRunningSubscription(t *testing.T) {
	f := newPaymentFixture()
	userID := uuid.New()
	sub := subscriptionWithPackage(userID, 30)
	payment := &entities.Payment{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		UserID:         userID,
		Price:          999,
		Subscription:   sub,
	}

	priorExpiry := time.Now().AddDate(0, 0, 10)
	prior := &entities.Subscription{
		ID:         uuid.New(),
		UserID:     userID,
		IsPaid:     true,
		IsActivate: true,
		ExpiredAt:  null.TimeFrom(priorExpiry),
	}

	f.billing.On("GetSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	f.billing.On("GetPaymentIntent", mock.Anything, "pi_1").Return(settledIntent(), nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	f.paymentRepo.On("MarkPaid", mock.Anything, payment.ID, "ch_1", "https://pay.example.com/receipts/ch_1").
		Return(true, nil)
	f.subscriptionRepo.On("GetActivePaid", mock.Anything, userID, sub.ID).Return(prior, nil)

	var expiry time.Time
	f.subscriptionRepo.On("Activate", mock.Anything, sub.ID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			expiry = args.Get(2).(time.Time)
		}).Return(nil)
	f.subscriptionRepo.On("Deactivate", mock.Anything, prior.ID).Return(nil)

	_, err := f.uc.ConfirmPayment(context.Background(), "cs_1", payment.ID)
	require.NoError(t, err)

	// the new period begins where the running one ends
	require.WithinDuration(t, priorExpiry.AddDate(0, 0, 30), expiry, time.Second)
	f.subscriptionRepo.AssertCalled(t, "Deactivate", mock.Anything, prior.ID)
}

func TestPaymentUsecase_ConfirmUnknownPayment(t *testing.T) {
	f := newPaymentFixture()
	f.billing.On("GetSession", mock.Anything, "cs_1").Return(paidSession("cs_1"), nil)
	f.billing.On("GetPaymentIntent", mock.Anything, "pi_1").Return(settledIntent(), nil)
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.paymentRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := f.uc.ConfirmPayment(context.Background(), "cs_1", uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
