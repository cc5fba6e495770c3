package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/planora/planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Ownership is NOT enforced here: GetByID returns any trip regardless of
// owner, and the service layer compares trip.UserID to the caller. Listing
// and counting are the only owner-scoped queries.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key, with
	// DestinationsCount populated. Returns domain.ErrNotFound if no trip
	// with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of the user's trips ordered by created_at
	// descending (most recent first), with DestinationsCount populated,
	// plus the total number of the user's trips.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields (title, description, dates) of an
	// existing trip and returns the updated record. Returns domain.ErrNotFound
	// if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. The destinations FK cascades, so the trip
	// and all its destinations disappear in one atomic statement.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of trips owned by the user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountUpcomingByUser returns the number of the user's trips whose
	// start_date is on or after the given date.
	CountUpcomingByUser(ctx context.Context, userID uuid.UUID, onOrAfter time.Time) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the SELECT list shared by every trip query, including the
// destination count subquery that feeds domain.Trip.DestinationsCount.
const tripColumns = `
	t.id, t.user_id, t.title, t.description, t.start_date, t.end_date,
	t.created_at, t.updated_at,
	(SELECT count(*) FROM destinations d WHERE d.trip_id = t.id) AS destinations_count`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO trips (user_id, title, description, start_date, end_date)
			VALUES (@user_id, @title, @description, @start_date, @end_date)
			RETURNING *
		)
		SELECT ` + tripColumns + ` FROM inserted t`

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"title":       trip.Title,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.user_id = @user_id
		ORDER BY t.created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	total, err := r.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH updated AS (
			UPDATE trips
			SET title       = @title,
			    description = @description,
			    start_date  = @start_date,
			    end_date    = @end_date,
			    updated_at  = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + tripColumns + ` FROM updated t`

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"title":       trip.Title,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `SELECT count(*) FROM trips WHERE user_id = @user_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountByUser: %w", err)
	}
	return n, nil
}

func (r *pgTripRepo) CountUpcomingByUser(ctx context.Context, userID uuid.UUID, onOrAfter time.Time) (int64, error) {
	const q = `
		SELECT count(*)
		FROM trips
		WHERE user_id = @user_id AND start_date >= @on_or_after`

	var n int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"user_id":     userID,
		"on_or_after": onOrAfter,
	}).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.CountUpcomingByUser: %w", err)
	}
	return n, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and date conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
		count  int64
	)

	err := s.Scan(&id, &userID, &t.Title, &t.Description, &start, &end,
		&t.CreatedAt, &t.UpdatedAt, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	t.DestinationsCount = int(count)

	return t, nil
}
