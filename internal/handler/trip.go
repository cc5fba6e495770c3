package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/middleware"
)

// tripRequest is the create/update payload. Dates use the "2006-01-02" wire
// format; pointer fields distinguish absent from zero so the service layer
// sees a zero time for a missing date and rejects it.
type tripRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
}

type tripResponse struct {
	Id                uuid.UUID             `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	StartDate         openapi_types.Date    `json:"startDate"`
	EndDate           openapi_types.Date    `json:"endDate"`
	DestinationsCount int                   `json:"destinationsCount"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
	Destinations      []destinationResponse `json:"destinations,omitempty"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
// The destinations list is omitted here; it is populated only on single-trip fetch.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), middleware.CallerEmail(r.Context()), params)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, nil)
	}
	respondJSON(w, http.StatusOK, tripListResponse{
		Data: data,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), middleware.CallerEmail(r.Context()), trip)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, tripToResponse(created, nil))
}

// GetTrip handles GET /trips/{id}. The response includes the trip's
// destinations in display order.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, dests, err := s.trips.Get(r.Context(), middleware.CallerEmail(r.Context()), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(trip, dests))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), middleware.CallerEmail(r.Context()), trip)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, tripToResponse(updated, nil))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), middleware.CallerEmail(r.Context()), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeTrip reads a tripRequest body into a domain.Trip, responding 422
// itself when the body is missing or malformed.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return domain.Trip{}, false
	}

	t := domain.Trip{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate.Time
	}
	return t, true
}

// tripToResponse converts a domain.Trip (and optionally its destinations)
// into the wire shape.
func tripToResponse(t domain.Trip, dests []domain.Destination) tripResponse {
	resp := tripResponse{
		Id:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		StartDate:         openapi_types.Date{Time: t.StartDate},
		EndDate:           openapi_types.Date{Time: t.EndDate},
		DestinationsCount: t.DestinationsCount,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if dests != nil {
		resp.Destinations = make([]destinationResponse, len(dests))
		for i, d := range dests {
			resp.Destinations[i] = destinationToResponse(d)
		}
	}
	return resp
}

// pathID parses the {id} path parameter. A malformed UUID cannot name any
// resource, so it is reported as not found.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "not found")
		return uuid.UUID{}, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed. Malformed values are deliberately treated like absent
// ones: pagination falls back to its defaults rather than rejecting the
// request, since a bad page number never exposes or corrupts anything.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
