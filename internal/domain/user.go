// Package domain contains the core data types for the trip planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Email is the identity key: authenticated callers
// arrive as an email string and are resolved to a User before any ownership
// check. PasswordHash is a bcrypt hash and must never leave the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
