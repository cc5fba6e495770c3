// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce the ownership gate, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// resolveCaller turns an authenticated email into the caller's user record.
// A missing user means the identity cannot be resolved at all, which is
// domain.ErrUnauthenticated, not ErrNotFound.
func resolveCaller(ctx context.Context, users repo.UserRepo, email string) (domain.User, error) {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("resolve caller: %w", domain.ErrUnauthenticated)
		}
		return domain.User{}, fmt.Errorf("resolve caller: %w", err)
	}
	return user, nil
}

// ownedTrip fetches a trip and verifies it belongs to the caller.
// An existing trip owned by someone else is reported as domain.ErrNotFound,
// exactly like an absent one, so callers can never probe for other users'
// trips. Every trip- and destination-scoped operation goes through here
// before touching anything.
func ownedTrip(ctx context.Context, trips repo.TripRepo, tripID, callerID uuid.UUID) (domain.Trip, error) {
	trip, err := trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != callerID {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", tripID, domain.ErrNotFound)
	}
	return trip, nil
}
