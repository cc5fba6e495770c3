package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
)

// Hand-written test doubles in the function-field style: each method is a
// function field — set only the ones your test needs. No mock generation
// library required for cases this simple.

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

type mockTripRepo struct {
	create              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser          func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete              func(ctx context.Context, id uuid.UUID) error
	countByUser         func(ctx context.Context, userID uuid.UUID) (int64, error)
	countUpcomingByUser func(ctx context.Context, userID uuid.UUID, onOrAfter time.Time) (int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUser(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.countByUser(ctx, userID)
}
func (m *mockTripRepo) CountUpcomingByUser(ctx context.Context, userID uuid.UUID, onOrAfter time.Time) (int64, error) {
	return m.countUpcomingByUser(ctx, userID, onOrAfter)
}

type mockDestinationRepo struct {
	create        func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	listByTrip    func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
	update        func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	countByUser   func(ctx context.Context, userID uuid.UUID) (int64, error)
	maxOrderIndex func(ctx context.Context, tripID uuid.UUID) (int, error)
	reorder       func(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.create(ctx, dest)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.update(ctx, dest)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDestinationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.countByUser(ctx, userID)
}
func (m *mockDestinationRepo) MaxOrderIndex(ctx context.Context, tripID uuid.UUID) (int, error) {
	return m.maxOrderIndex(ctx, tripID)
}
func (m *mockDestinationRepo) Reorder(ctx context.Context, tripID uuid.UUID, ids []uuid.UUID) error {
	return m.reorder(ctx, tripID, ids)
}

// compile-time checks: mocks must satisfy the repo interfaces.
var (
	_ repo.UserRepo        = (*mockUserRepo)(nil)
	_ repo.TripRepo        = (*mockTripRepo)(nil)
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
)

// ---- shared fixtures -------------------------------------------------------

var (
	anaID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// directoryWith returns a user repo that knows exactly the given users by email.
func directoryWith(users ...domain.User) *mockUserRepo {
	return &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return domain.User{}, domain.ErrNotFound
		},
	}
}

func ana() domain.User {
	return domain.User{ID: anaID, Email: "ana@example.com", Name: "Ana"}
}

func bob() domain.User {
	return domain.User{ID: bobID, Email: "bob@example.com", Name: "Bob"}
}

func validTrip(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		UserID:    owner,
		Title:     "Japan",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

// tripRepoWith returns a trip repo whose GetByID serves the given trip and
// whose Create/Update echo their input.
func tripRepoWith(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id == trip.ID {
				return trip, nil
			}
			return domain.Trip{}, domain.ErrNotFound
		},
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}
