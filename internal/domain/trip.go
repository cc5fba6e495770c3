package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned trip with a date range.
// A trip is the top-level aggregate; destinations belong to a trip and are
// removed with it. UserID is the owner and is immutable after creation —
// a trip is visible and mutable only to its owner.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DestinationsCount is a read-side convenience populated by list/get
	// queries. It is never written back to the database.
	DestinationsCount int
}
