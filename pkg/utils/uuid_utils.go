package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a new UUID v7. The time-ordered layout keeps
// primary key inserts append-mostly.
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}
