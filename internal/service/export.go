package service

import (
	"context"
	"fmt"
	"time"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// exportPageSize is the trip page size used when walking the caller's trips.
const exportPageSize = 100

// ExportService assembles a flat export of the caller's trips and destinations.
type ExportService struct {
	users repo.UserRepo
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(users repo.UserRepo, trips repo.TripRepo, dests repo.DestinationRepo) *ExportService {
	return &ExportService{users: users, trips: trips, dests: dests}
}

// Rows returns one ExportRow per destination across all of the caller's
// trips, trips in most-recent-first order and destinations in display order.
// Trips with no destinations contribute one row with empty destination fields.
func (s *ExportService) Rows(ctx context.Context, email string) ([]domain.ExportRow, error) {
	caller, err := resolveCaller(ctx, s.users, email)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}

	rows := []domain.ExportRow{}
	for page := 1; ; page++ {
		p := domain.PaginationParams{Page: page, Limit: exportPageSize}
		trips, total, err := s.trips.ListByUser(ctx, caller.ID, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
		}

		for _, trip := range trips {
			dests, err := s.dests.ListByTrip(ctx, trip.ID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
			}
			rows = append(rows, tripRows(trip, dests)...)
		}

		if int64(page*exportPageSize) >= total || len(trips) == 0 {
			break
		}
	}

	return rows, nil
}

// tripRows flattens one trip into export rows.
func tripRows(trip domain.Trip, dests []domain.Destination) []domain.ExportRow {
	base := domain.ExportRow{
		TripID:        trip.ID.String(),
		TripTitle:     trip.Title,
		TripStartDate: trip.StartDate.Format(time.DateOnly),
		TripEndDate:   trip.EndDate.Format(time.DateOnly),
	}

	if len(dests) == 0 {
		return []domain.ExportRow{base}
	}

	rows := make([]domain.ExportRow, 0, len(dests))
	for _, d := range dests {
		row := base
		row.DestinationName = d.Name
		row.DestinationDate = d.Date.Format(time.DateOnly)
		row.DestinationTime = d.Time
		row.Address = d.Address
		row.Notes = d.Notes
		row.OrderIndex = d.OrderIndex
		rows = append(rows, row)
	}
	return rows
}
