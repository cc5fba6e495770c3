package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/middleware"
)

// destinationRequest is the create/update payload. Time is an optional
// "15:04" time of day; orderIndex is never accepted here — ordering changes
// only through the reorder endpoint.
type destinationRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Date        *openapi_types.Date `json:"date"`
	Time        string              `json:"time"`
	Notes       string              `json:"notes"`
	Address     string              `json:"address"`
}

type destinationResponse struct {
	Id          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Date        openapi_types.Date `json:"date"`
	Time        string             `json:"time,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	Address     string             `json:"address,omitempty"`
	OrderIndex  int                `json:"orderIndex"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type reorderRequest struct {
	DestinationIds []uuid.UUID `json:"destinationIds"`
}

// ListDestinations handles GET /trips/{id}/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}

	dests, err := s.dests.ListByTrip(r.Context(), middleware.CallerEmail(r.Context()), tripID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	data := make([]destinationResponse, len(dests))
	for i, d := range dests {
		data[i] = destinationToResponse(d)
	}
	respondJSON(w, http.StatusOK, data)
}

// CreateDestination handles POST /trips/{id}/destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}
	dest, ok := decodeDestination(w, r)
	if !ok {
		return
	}
	dest.TripID = tripID

	created, err := s.dests.Create(r.Context(), middleware.CallerEmail(r.Context()), dest)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, destinationToResponse(created))
}

// UpdateDestination handles PUT /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	dest, ok := decodeDestination(w, r)
	if !ok {
		return
	}
	dest.ID = id

	updated, err := s.dests.Update(r.Context(), middleware.CallerEmail(r.Context()), dest)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.dests.Delete(r.Context(), middleware.CallerEmail(r.Context()), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderDestinations handles PUT /trips/{id}/destinations/reorder.
// The body lists every destination id of the trip in the new display order.
func (s *Server) ReorderDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return
	}

	err := s.dests.Reorder(r.Context(), middleware.CallerEmail(r.Context()), tripID, req.DestinationIds)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Destinations reordered successfully"})
}

// --- mapping helpers --------------------------------------------------------

func decodeDestination(w http.ResponseWriter, r *http.Request) (domain.Destination, bool) {
	var req destinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body must be valid JSON")
		return domain.Destination{}, false
	}

	d := domain.Destination{
		Name:        req.Name,
		Description: req.Description,
		Time:        req.Time,
		Notes:       req.Notes,
		Address:     req.Address,
	}
	if req.Date != nil {
		d.Date = req.Date.Time
	}
	return d, true
}

func destinationToResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		Id:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Date:        openapi_types.Date{Time: d.Date},
		Time:        d.Time,
		Notes:       d.Notes,
		Address:     d.Address,
		OrderIndex:  d.OrderIndex,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
