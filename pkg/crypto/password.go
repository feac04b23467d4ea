package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// OTPDigits is the length of generated one-time passcodes
	OTPDigits = 6
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomInt                  = rand.Int
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a password with a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateOTP generates a fixed-length numeric one-time passcode.
// The first digit is never zero so the code survives numeric round-trips.
func GenerateOTP() (int, error) {
	low := int64(1)
	for i := 1; i < OTPDigits; i++ {
		low *= 10
	}
	n, err := randomInt(rand.Reader, big.NewInt(low*9))
	if err != nil {
		return 0, fmt.Errorf("failed to generate otp: %w", err)
	}
	return int(n.Int64() + low), nil
}
