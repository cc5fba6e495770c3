package handler

import (
	"net/http"
	"time"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/middleware"
)

// statsResponse wraps the stats object, matching the shape clients already
// consume: {"stats": {...}}.
type statsResponse struct {
	Stats domain.DashboardStats `json:"stats"`
}

// GetDashboardStats handles GET /dashboard/stats.
// "Today" is the server's current UTC date; a trip starting today counts as
// upcoming.
func (s *Server) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	stats, err := s.dashboard.Stats(r.Context(), middleware.CallerEmail(r.Context()), today)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, statsResponse{Stats: stats})
}
