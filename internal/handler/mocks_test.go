package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/planora/planner/internal/auth"
	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/handler"
)

// Test doubles for the handler's service interfaces, in the function-field
// style: set only the method fields your test needs.

type mockAuthServicer struct {
	signup      func(ctx context.Context, name, email, password string) (domain.User, string, error)
	login       func(ctx context.Context, email, password string) (domain.User, string, error)
	currentUser func(ctx context.Context, email string) (domain.User, error)
}

func (m *mockAuthServicer) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	return m.signup(ctx, name, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}
func (m *mockAuthServicer) CurrentUser(ctx context.Context, email string) (domain.User, error) {
	return m.currentUser(ctx, email)
}

type mockTripServicer struct {
	list   func(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	get    func(ctx context.Context, email string, tripID uuid.UUID) (domain.Trip, []domain.Destination, error)
	create func(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error)
	update func(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error)
	delete func(ctx context.Context, email string, tripID uuid.UUID) error
}

func (m *mockTripServicer) List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, email, p)
}
func (m *mockTripServicer) Get(ctx context.Context, email string, tripID uuid.UUID) (domain.Trip, []domain.Destination, error) {
	return m.get(ctx, email, tripID)
}
func (m *mockTripServicer) Create(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, email, trip)
}
func (m *mockTripServicer) Update(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, email, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, email string, tripID uuid.UUID) error {
	return m.delete(ctx, email, tripID)
}

type mockDestinationServicer struct {
	listByTrip func(ctx context.Context, email string, tripID uuid.UUID) ([]domain.Destination, error)
	create     func(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error)
	update     func(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error)
	delete     func(ctx context.Context, email string, destID uuid.UUID) error
	reorder    func(ctx context.Context, email string, tripID uuid.UUID, ids []uuid.UUID) error
}

func (m *mockDestinationServicer) ListByTrip(ctx context.Context, email string, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, email, tripID)
}
func (m *mockDestinationServicer) Create(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error) {
	return m.create(ctx, email, dest)
}
func (m *mockDestinationServicer) Update(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error) {
	return m.update(ctx, email, dest)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, email string, destID uuid.UUID) error {
	return m.delete(ctx, email, destID)
}
func (m *mockDestinationServicer) Reorder(ctx context.Context, email string, tripID uuid.UUID, ids []uuid.UUID) error {
	return m.reorder(ctx, email, tripID, ids)
}

type mockDashboardServicer struct {
	stats func(ctx context.Context, email string, today time.Time) (domain.DashboardStats, error)
}

func (m *mockDashboardServicer) Stats(ctx context.Context, email string, today time.Time) (domain.DashboardStats, error) {
	return m.stats(ctx, email, today)
}

type mockExportServicer struct {
	rows func(ctx context.Context, email string) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Rows(ctx context.Context, email string) ([]domain.ExportRow, error) {
	return m.rows(ctx, email)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.AuthServicer        = (*mockAuthServicer)(nil)
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
	_ handler.DashboardServicer   = (*mockDashboardServicer)(nil)
	_ handler.ExportServicer      = (*mockExportServicer)(nil)
)

// ---- harness ---------------------------------------------------------------

// services bundles the mocks a test wants wired; nil fields stay nil, which
// is fine as long as the test never routes to them.
type services struct {
	auth      handler.AuthServicer
	trips     handler.TripServicer
	dests     handler.DestinationServicer
	dashboard handler.DashboardServicer
	export    handler.ExportServicer
}

// testTokens is a real token manager so the bearer middleware runs for real
// in handler tests, exactly as main.go wires it.
var testTokens = auth.NewManager("handler-test-secret", time.Hour)

// newHTTPHandler builds the full router around the given mocks.
func newHTTPHandler(svcs services) http.Handler {
	srv := handler.NewServer(svcs.auth, svcs.trips, svcs.dests, svcs.dashboard, svcs.export, nil, nil)
	return srv.Routes(testTokens)
}

// authedRequest builds a request carrying a valid bearer token for the given
// caller email.
func authedRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	token, err := testTokens.Issue(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func userFixture() domain.User {
	return domain.User{
		ID:        uuid.New(),
		Name:      "Ana",
		Email:     "ana@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Title:     "Japan Adventure",
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func destinationFixture(tripID uuid.UUID, orderIndex int) domain.Destination {
	return domain.Destination{
		ID:         uuid.New(),
		TripID:     tripID,
		Name:       "Tokyo Tower",
		Date:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Time:       "14:30",
		OrderIndex: orderIndex,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}
