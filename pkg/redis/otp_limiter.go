package redis

import (
	"context"
	"time"
)

// OTPLimiter throttles OTP resends per user. A resend claims a short-lived
// key; while the key lives, further resends for the same user are refused.
type OTPLimiter struct {
	cooldown time.Duration
}

var claimKey = SetNX

// NewOTPLimiter creates a new OTP resend limiter
func NewOTPLimiter(cooldown time.Duration) *OTPLimiter {
	return &OTPLimiter{cooldown: cooldown}
}

// Allow reports whether the user may be sent a new OTP right now. The
// first call within a cooldown window claims it; subsequent calls fail
// until the window expires.
func (l *OTPLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	return claimKey(ctx, "otp:resend:"+userID, 1, l.cooldown)
}
