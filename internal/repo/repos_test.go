package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/repo"
	"github.com/planora/planner/testutil"
)

// testRepos bundles all three repos over one shared transaction so fixtures
// created through one repo are visible to the others.
type testRepos struct {
	users repo.UserRepo
	trips repo.TripRepo
	dests repo.DestinationRepo
}

// newTestRepos opens a transaction against the test database and returns
// repos backed by it. The transaction is automatically rolled back when the
// test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set and all migrations to be applied
// (TestMain handles the migrations).
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		users: repo.NewUserRepo(tx),
		trips: repo.NewTripRepo(tx),
		dests: repo.NewDestinationRepo(tx),
	}
}

// createUser persists a user fixture with the given email.
func createUser(t *testing.T, r testRepos, email string) domain.User {
	t.Helper()
	user, err := r.users.Create(context.Background(), domain.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$10$fixturefixturefixturefixturefix",
	})
	require.NoError(t, err)
	return user
}

// createTrip persists a trip fixture owned by the given user.
// Callers can tweak the returned record via the overrides.
func createTrip(t *testing.T, r testRepos, owner domain.User, title string, start time.Time) domain.Trip {
	t.Helper()
	trip, err := r.trips.Create(context.Background(), domain.Trip{
		UserID:      owner.ID,
		Title:       title,
		Description: "fixture trip",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	return trip
}

// createDestination persists a destination fixture under the given trip.
func createDestination(t *testing.T, r testRepos, trip domain.Trip, name string) domain.Destination {
	t.Helper()
	dest, err := r.dests.Create(context.Background(), domain.Destination{
		TripID: trip.ID,
		Name:   name,
		Date:   trip.StartDate.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	return dest
}

// date builds a UTC calendar date.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
