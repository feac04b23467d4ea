package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OTPConsumedSentinel is written in place of a consumed or reset OTP
const OTPConsumedSentinel = 0

// Verification is the one-to-one OTP verification record of a user.
// Once Status is true the stored OTP is meaningless; consumption resets
// it to the sentinel and clears the expiry.
type Verification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	OTP       int       `json:"-"`
	ExpiredAt null.Time `json:"expiredAt,omitempty"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginDevice is an append-only login fingerprint history entry
type LoginDevice struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	IP        string    `json:"ip"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"createdAt"`
}
