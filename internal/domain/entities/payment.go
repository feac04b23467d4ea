package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Payment represents a checkout attempt against a subscription. At most one
// unpaid payment per (user, subscription) pair may be outstanding; the unpaid
// row is reused when a checkout is retried.
type Payment struct {
	ID             uuid.UUID   `json:"id"`
	SubscriptionID uuid.UUID   `json:"subscriptionId"`
	UserID         uuid.UUID   `json:"userId"`
	Price          int64       `json:"price"`
	IsPaid         bool        `json:"isPaid"`
	TrnID          null.String `json:"trnId,omitempty"`
	ReceiptURL     null.String `json:"receiptUrl,omitempty"`
	IsDeleted      bool        `json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`

	Subscription *Subscription `json:"subscription,omitempty"`
	User         *User         `json:"user,omitempty"`
}

// CheckoutInput represents input for starting a checkout
type CheckoutInput struct {
	SubscriptionID uuid.UUID `json:"subscriptionId" binding:"required"`
}

// PaymentListQuery holds filter, sort and pagination for listing
type PaymentListQuery struct {
	UserID *uuid.UUID
	IsPaid *bool
	Sort   string
	Page   int
	Limit  int
}

// ChargeDetails carries the external charge metadata used for receipt rendering
type ChargeDetails struct {
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	Refunded      bool      `json:"refunded"`
	TransactionID string    `json:"transactionId"`
	CardLast4     string    `json:"cardLast4"`
	ReceiptURL    string    `json:"receiptUrl"`
	PaymentDate   time.Time `json:"paymentDate"`
}

// ConfirmPaymentResult is the reconciled view returned after confirmation
type ConfirmPaymentResult struct {
	Payment       *Payment      `json:"payment"`
	Subscription  *Subscription `json:"subscription"`
	Package       *Package      `json:"package"`
	ChargeDetails ChargeDetails `json:"chargeDetails"`
}
