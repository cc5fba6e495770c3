package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every method takes the caller's email: the identity is resolved to a user
// id first, and the ownership gate runs before any read or mutation.
type TripService struct {
	users repo.UserRepo
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(users repo.UserRepo, trips repo.TripRepo, dests repo.DestinationRepo) *TripService {
	return &TripService{users: users, trips: trips, dests: dests}
}

// List returns one page of the caller's trips, most recently created first,
// plus the caller's total trip count. Other users' trips never appear.
func (s *TripService) List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}

	trips, total, err := s.trips.ListByUser(ctx, caller.ID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Get returns a single owned trip together with its destinations in display
// order. Returns domain.ErrNotFound for an absent or foreign trip.
func (s *TripService) Get(ctx context.Context, email string, tripID uuid.UUID) (domain.Trip, []domain.Destination, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Get: %w", err)
	}

	trip, err := ownedTrip(ctx, s.trips, tripID, caller.ID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Get: %w", err)
	}

	dests, err := s.dests.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if dests == nil {
		dests = []domain.Destination{}
	}
	return trip, dests, nil
}

// Create validates and persists a new trip owned by the caller.
func (s *TripService) Create(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.UserID = caller.ID
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// Update validates and overwrites the mutable fields of an owned trip.
// The owner never changes.
func (s *TripService) Update(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, trip.ID, caller.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an owned trip. All of its destinations go with it — the
// store cascades the delete in one atomic statement, so a crash can never
// leave orphaned destinations behind.
func (s *TripService) Delete(ctx context.Context, email string, tripID uuid.UUID) error {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, tripID, caller.ID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Both dates are required; the end date must not be before the start date.
//     A same-day trip is valid.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if trip.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
