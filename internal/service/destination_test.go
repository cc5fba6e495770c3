package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/service"
)

func validDestination(tripID uuid.UUID) domain.Destination {
	return domain.Destination{
		ID:     uuid.MustParse("44444444-4444-4444-4444-444444444444"),
		TripID: tripID,
		Name:   "Tokyo Tower",
		Date:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}
}

// destRepoWith returns a destination repo whose GetByID serves the given
// destination and whose Create/Update echo their input.
func destRepoWith(dest domain.Destination) *mockDestinationRepo {
	return &mockDestinationRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Destination, error) {
			if id == dest.ID {
				return dest, nil
			}
			return domain.Destination{}, domain.ErrNotFound
		},
		create: func(_ context.Context, d domain.Destination) (domain.Destination, error) { return d, nil },
		update: func(_ context.Context, d domain.Destination) (domain.Destination, error) { return d, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestDestinationService_Create_Valid(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	got, err := svc.Create(context.Background(), "ana@example.com", validDestination(trip.ID))

	require.NoError(t, err)
	assert.Equal(t, "Tokyo Tower", got.Name)
}

func TestDestinationService_Create_ForeignParentTripIsNotFound(t *testing.T) {
	trip := validTrip(anaID)
	dests := destRepoWith(domain.Destination{})
	created := false
	dests.create = func(_ context.Context, d domain.Destination) (domain.Destination, error) {
		created = true
		return d, nil
	}
	svc := service.NewDestinationService(directoryWith(ana(), bob()), tripRepoWith(trip), dests)

	_, err := svc.Create(context.Background(), "bob@example.com", validDestination(trip.ID))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, created, "nothing may be inserted under a foreign trip")
}

func TestDestinationService_Create_MissingName(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	dest := validDestination(trip.ID)
	dest.Name = "  "

	_, err := svc.Create(context.Background(), "ana@example.com", dest)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Create_MissingDate(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	dest := validDestination(trip.ID)
	dest.Date = time.Time{}

	_, err := svc.Create(context.Background(), "ana@example.com", dest)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Create_MalformedTime(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	for _, tod := range []string{"banana", "25:00", "9:5pm", "14:30:00"} {
		dest := validDestination(trip.ID)
		dest.Time = tod

		_, err := svc.Create(context.Background(), "ana@example.com", dest)

		assert.ErrorIs(t, err, domain.ErrValidation, "time %q", tod)
	}
}

func TestDestinationService_Create_ValidTime(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	dest := validDestination(trip.ID)
	dest.Time = "09:05"

	_, err := svc.Create(context.Background(), "ana@example.com", dest)

	assert.NoError(t, err)
}

func TestDestinationService_Create_DateOutsideTripRangeIsAllowed(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	dest := validDestination(trip.ID)
	dest.Date = trip.EndDate.AddDate(0, 1, 0) // deliberately unconstrained

	_, err := svc.Create(context.Background(), "ana@example.com", dest)

	assert.NoError(t, err)
}

// ---- Update ----------------------------------------------------------------

func TestDestinationService_Update_ForeignParentTripIsNotFound(t *testing.T) {
	trip := validTrip(anaID)
	dest := validDestination(trip.ID)
	svc := service.NewDestinationService(directoryWith(ana(), bob()), tripRepoWith(trip), destRepoWith(dest))

	update := dest
	update.Name = "Hijacked"

	_, err := svc.Update(context.Background(), "bob@example.com", update)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationService_Update_Valid(t *testing.T) {
	trip := validTrip(anaID)
	dest := validDestination(trip.ID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(dest))

	update := dest
	update.Name = "Tokyo Tower at night"

	got, err := svc.Update(context.Background(), "ana@example.com", update)

	require.NoError(t, err)
	assert.Equal(t, "Tokyo Tower at night", got.Name)
}

// ---- Delete ----------------------------------------------------------------

func TestDestinationService_Delete_ForeignParentTripIsNotFound(t *testing.T) {
	trip := validTrip(anaID)
	dest := validDestination(trip.ID)
	dests := destRepoWith(dest)
	deleted := false
	dests.delete = func(_ context.Context, _ uuid.UUID) error {
		deleted = true
		return nil
	}
	svc := service.NewDestinationService(directoryWith(ana(), bob()), tripRepoWith(trip), dests)

	err := svc.Delete(context.Background(), "bob@example.com", dest.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, deleted)
}

func TestDestinationService_Delete_Owned(t *testing.T) {
	trip := validTrip(anaID)
	dest := validDestination(trip.ID)
	dests := destRepoWith(dest)
	dests.delete = func(_ context.Context, id uuid.UUID) error {
		assert.Equal(t, dest.ID, id)
		return nil
	}
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), dests)

	err := svc.Delete(context.Background(), "ana@example.com", dest.ID)

	assert.NoError(t, err)
}

// ---- ListByTrip ------------------------------------------------------------

func TestDestinationService_ListByTrip_EmptyIsNonNil(t *testing.T) {
	trip := validTrip(anaID)
	dests := destRepoWith(domain.Destination{})
	dests.listByTrip = func(_ context.Context, _ uuid.UUID) ([]domain.Destination, error) {
		return nil, nil
	}
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), dests)

	got, err := svc.ListByTrip(context.Background(), "ana@example.com", trip.ID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDestinationService_ListByTrip_ForeignTripIsNotFound(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana(), bob()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	_, err := svc.ListByTrip(context.Background(), "bob@example.com", trip.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Reorder ---------------------------------------------------------------

func TestDestinationService_Reorder_Valid(t *testing.T) {
	trip := validTrip(anaID)
	dests := destRepoWith(domain.Destination{})
	var gotIDs []uuid.UUID
	dests.reorder = func(_ context.Context, tripID uuid.UUID, ids []uuid.UUID) error {
		assert.Equal(t, trip.ID, tripID)
		gotIDs = ids
		return nil
	}
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), dests)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	err := svc.Reorder(context.Background(), "ana@example.com", trip.ID, ids)

	require.NoError(t, err)
	assert.Equal(t, ids, gotIDs)
}

func TestDestinationService_Reorder_EmptyIDs(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	err := svc.Reorder(context.Background(), "ana@example.com", trip.ID, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Reorder_DuplicateIDs(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	id := uuid.New()
	err := svc.Reorder(context.Background(), "ana@example.com", trip.ID, []uuid.UUID{id, id})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Reorder_ForeignTripIsNotFound(t *testing.T) {
	trip := validTrip(anaID)
	svc := service.NewDestinationService(directoryWith(ana(), bob()), tripRepoWith(trip), destRepoWith(domain.Destination{}))

	err := svc.Reorder(context.Background(), "bob@example.com", trip.ID, []uuid.UUID{uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
