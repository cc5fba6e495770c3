package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// DestinationService implements business logic for Destination operations.
// It holds users, trips, and destinations repos because every destination
// operation is authorized through the parent trip's owner.
type DestinationService struct {
	users repo.UserRepo
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repos.
func NewDestinationService(users repo.UserRepo, trips repo.TripRepo, dests repo.DestinationRepo) *DestinationService {
	return &DestinationService{users: users, trips: trips, dests: dests}
}

// ListByTrip returns all destinations of an owned trip in display order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DestinationService) ListByTrip(ctx context.Context, email string, tripID uuid.UUID) ([]domain.Destination, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTrip: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, tripID, caller.ID); err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTrip: %w", err)
	}

	dests, err := s.dests.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListByTrip: %w", err)
	}
	if dests == nil {
		dests = []domain.Destination{}
	}
	return dests, nil
}

// Create validates the destination, verifies the caller owns the parent trip,
// then persists. The repo assigns the next order index.
func (s *DestinationService) Create(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, dest.TripID, caller.ID); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.dests.Create(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// Update validates and overwrites the mutable fields of a destination after
// verifying the caller owns its parent trip. The order index and trip
// association never change through this path.
func (s *DestinationService) Update(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}

	existing, err := s.dests.GetByID(ctx, dest.ID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, existing.TripID, caller.ID); err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.dests.Update(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination after verifying the caller owns its parent trip.
func (s *DestinationService) Delete(ctx context.Context, email string, destID uuid.UUID) error {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}

	existing, err := s.dests.GetByID(ctx, destID)
	if err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, existing.TripID, caller.ID); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}

	if err := s.dests.Delete(ctx, destID); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// Reorder rewrites the display order of an owned trip's destinations.
// ids must list exactly the trip's destinations in the new order; the repo
// rejects anything else and leaves the ordering untouched.
func (s *DestinationService) Reorder(ctx context.Context, email string, tripID uuid.UUID, ids []uuid.UUID) error {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	if _, err := ownedTrip(ctx, s.trips, tripID, caller.ID); err != nil {
		return fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: destination ids are required", domain.ErrValidation)
	}
	if hasDuplicate(ids) {
		return fmt.Errorf("%w: duplicate destination id", domain.ErrValidation)
	}

	if err := s.dests.Reorder(ctx, tripID, ids); err != nil {
		return fmt.Errorf("service.DestinationService.Reorder: %w", err)
	}
	return nil
}

// validateDestination enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Date is required.
//   - Time, when set, must be a valid "15:04" time of day.
//
// The date is deliberately not constrained to the trip's date range.
func validateDestination(dest domain.Destination) error {
	if strings.TrimSpace(dest.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if dest.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if dest.Time != "" {
		if _, err := time.Parse("15:04", dest.Time); err != nil {
			return fmt.Errorf("%w: time must be in HH:MM format", domain.ErrValidation)
		}
	}
	return nil
}

func hasDuplicate(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
