package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers for queue items and trace headers. It
// prefers UUIDv7 so ids sort roughly by creation time, which keeps the
// sync_items table readable when debugging a stuck queue.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4 when the
// monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
