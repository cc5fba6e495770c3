// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, etc.) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/middleware"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Signup(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	CurrentUser(ctx context.Context, email string) (domain.User, error)
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	List(ctx context.Context, email string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Get(ctx context.Context, email string, tripID uuid.UUID) (domain.Trip, []domain.Destination, error)
	Create(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, email string, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, email string, tripID uuid.UUID) error
}

// DestinationServicer defines the business operations the destination
// handlers depend on.
type DestinationServicer interface {
	ListByTrip(ctx context.Context, email string, tripID uuid.UUID) ([]domain.Destination, error)
	Create(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error)
	Update(ctx context.Context, email string, dest domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, email string, destID uuid.UUID) error
	Reorder(ctx context.Context, email string, tripID uuid.UUID, ids []uuid.UUID) error
}

// DashboardServicer defines the rollup the dashboard handler depends on.
type DashboardServicer interface {
	Stats(ctx context.Context, email string, today time.Time) (domain.DashboardStats, error)
}

// ExportServicer defines the flat export the export handler depends on.
type ExportServicer interface {
	Rows(ctx context.Context, email string) ([]domain.ExportRow, error)
}

// Server holds every handler dependency. Wire it in main.go and mount
// Routes() on the root router.
type Server struct {
	auth      AuthServicer
	trips     TripServicer
	dests     DestinationServicer
	dashboard DashboardServicer
	export    ExportServicer
	openapi   []byte
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// openapi is the raw spec served at /openapi.yaml; pass nil to disable the route.
func NewServer(auth AuthServicer, trips TripServicer, dests DestinationServicer,
	dashboard DashboardServicer, export ExportServicer, openapi []byte, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:      auth,
		trips:     trips,
		dests:     dests,
		dashboard: dashboard,
		export:    export,
		openapi:   openapi,
		log:       log,
	}
}

// Routes builds the full API router. Everything except health, the spec, and
// the auth endpoints sits behind the bearer token middleware.
func (s *Server) Routes(tokens middleware.TokenParser) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Post("/auth/signup", s.Signup)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))

		r.Get("/auth/me", s.GetCurrentUser)

		r.Get("/trips", s.ListTrips)
		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{id}", s.GetTrip)
		r.Put("/trips/{id}", s.UpdateTrip)
		r.Delete("/trips/{id}", s.DeleteTrip)

		r.Get("/trips/{id}/destinations", s.ListDestinations)
		r.Post("/trips/{id}/destinations", s.CreateDestination)
		r.Put("/trips/{id}/destinations/reorder", s.ReorderDestinations)
		r.Put("/destinations/{id}", s.UpdateDestination)
		r.Delete("/destinations/{id}", s.DeleteDestination)

		r.Get("/dashboard/stats", s.GetDashboardStats)
		r.Get("/export", s.GetExport)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded spec.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — nothing useful to do if the client is gone.
	w.Write(s.openapi)
}
