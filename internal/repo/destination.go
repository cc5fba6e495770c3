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

// DestinationRepo defines the persistence operations for Destinations.
//
// Like TripRepo, ownership is not enforced here: the service layer resolves
// the parent trip and compares its owner to the caller. The repo's single
// ordering responsibility is the order_index assignment on Create and the
// transactional rewrite in Reorder.
type DestinationRepo interface {
	// Create inserts a new destination. order_index is computed inside the
	// INSERT as max(existing for the trip)+1, so the first destination of a
	// trip gets index 1. The caller-provided OrderIndex is ignored.
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination by its UUID primary key.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// ListByTrip returns all destinations for a trip ordered by order_index
	// ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)

	// Update overwrites name, description, date, time, notes, and address.
	// order_index and trip_id are immutable through this path.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// Delete removes a destination by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of destinations across all trips owned
	// by the user. This traverses the trips table; destinations carry no
	// direct owner column.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// MaxOrderIndex returns the highest order_index in the trip, or 0 when
	// the trip has no destinations.
	MaxOrderIndex(ctx context.Context, tripID uuid.UUID) (int, error)

	// Reorder rewrites order_index to 1..len(ids) following the given order,
	// inside a single transaction. The ids must be exactly the trip's
	// destinations; otherwise domain.ErrValidation is returned and nothing
	// changes.
	Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, trip_id, name, description, date, time, notes, address,
	order_index, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	// The order_index subquery and the INSERT run as one statement, so two
	// sequential creates can never observe the same max.
	const q = `
		INSERT INTO destinations (trip_id, name, description, date, time, notes, address, order_index)
		VALUES (@trip_id, @name, @description, @date, @time, @notes, @address,
			(SELECT COALESCE(MAX(order_index), 0) + 1 FROM destinations WHERE trip_id = @trip_id))
		RETURNING ` + destinationColumns

	tod, err := timeOfDayValue(dest.Time)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"trip_id":     dest.TripID,
		"name":        dest.Name,
		"description": dest.Description,
		"date":        dest.Date,
		"time":        tod,
		"notes":       dest.Notes,
		"address":     dest.Address,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE trip_id = @trip_id
		ORDER BY order_index ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var dests []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: rows: %w", err)
	}

	return dests, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name        = @name,
		    description = @description,
		    date        = @date,
		    time        = @time,
		    notes       = @notes,
		    address     = @address,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	tod, err := timeOfDayValue(dest.Time)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}

	args := pgx.NamedArgs{
		"id":          dest.ID,
		"name":        dest.Name,
		"description": dest.Description,
		"date":        dest.Date,
		"time":        tod,
		"notes":       dest.Notes,
		"address":     dest.Address,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDestinationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const q = `
		SELECT count(*)
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE t.user_id = @user_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.DestinationRepo.CountByUser: %w", err)
	}
	return n, nil
}

func (r *pgDestinationRepo) MaxOrderIndex(ctx context.Context, tripID uuid.UUID) (int, error) {
	const q = `SELECT COALESCE(MAX(order_index), 0) FROM destinations WHERE trip_id = @trip_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.DestinationRepo.MaxOrderIndex: %w", err)
	}
	return n, nil
}

func (r *pgDestinationRepo) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Reorder: begin: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback(ctx)

	var existing int64
	const countQ = `SELECT count(*) FROM destinations WHERE trip_id = @trip_id`
	if err := tx.QueryRow(ctx, countQ, pgx.NamedArgs{"trip_id": tripID}).Scan(&existing); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Reorder: count: %w", err)
	}
	if existing != int64(len(ids)) {
		return fmt.Errorf("repo.DestinationRepo.Reorder: %w: id list does not match trip destinations", domain.ErrValidation)
	}

	// The unique (trip_id, order_index) constraint is deferred, so
	// intermediate duplicates during the rewrite are fine.
	const updateQ = `
		UPDATE destinations
		SET order_index = @order_index, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	for i, id := range ids {
		tag, err := tx.Exec(ctx, updateQ, pgx.NamedArgs{
			"id":          id,
			"trip_id":     tripID,
			"order_index": i + 1,
		})
		if err != nil {
			return fmt.Errorf("repo.DestinationRepo.Reorder: update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// An id from another trip, a duplicate, or a stale id.
			return fmt.Errorf("repo.DestinationRepo.Reorder: %w: id list does not match trip destinations", domain.ErrValidation)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Reorder: commit: %w", err)
	}
	return nil
}

// scanDestination maps a single database row into a domain.Destination.
// It handles the UUID, date, and nullable time-of-day conversions.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d      domain.Destination
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
		tod    pgtype.Time
	)

	err := s.Scan(&id, &tripID, &d.Name, &d.Description, &date, &tod,
		&d.Notes, &d.Address, &d.OrderIndex, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.Date = date.Time
	d.Time = timeOfDayString(tod)

	return d, nil
}

// timeOfDayValue converts an "HH:MM" string into a pgtype.Time for a TIME
// column. An empty string becomes NULL.
func timeOfDayValue(s string) (pgtype.Time, error) {
	if s == "" {
		return pgtype.Time{}, nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return pgtype.Time{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	micros := int64(parsed.Hour())*int64(time.Hour/time.Microsecond) +
		int64(parsed.Minute())*int64(time.Minute/time.Microsecond)
	return pgtype.Time{Microseconds: micros, Valid: true}, nil
}

// timeOfDayString formats a TIME column value as "HH:MM". NULL becomes "".
func timeOfDayString(t pgtype.Time) string {
	if !t.Valid {
		return ""
	}
	total := t.Microseconds / int64(time.Minute/time.Microsecond)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
