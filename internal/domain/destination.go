package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination represents a single ordered stop or activity within a trip.
// TripID is immutable after creation. OrderIndex determines display order
// ascending within a trip; it is assigned by the repo on create as
// max(existing)+1 (1 for the first destination) and is only ever changed by
// an explicit reorder, never by Update.
type Destination struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        string
	Description string
	Date        time.Time
	Time        string // "15:04" time of day; empty when not set
	Notes       string
	Address     string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
