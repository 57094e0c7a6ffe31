package shared

import (
	"github.com/google/uuid"
)

type TableSnapshot struct {
	ID              uuid.UUID
	Number          int
	HourlyRateCents int64
	IsAvailable     bool
}

// Contact is where receipts for a reservation are delivered.
type Contact struct {
	Name  string
	Email string
	Phone string
}
