// Package handler — export.go implements GET /export.
// Returns the caller's trips and destinations as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/planora/planner/internal/domain"
	"github.com/planora/planner/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_start_date", "trip_end_date",
	"destination_name", "destination_date", "destination_time",
	"address", "notes", "order_index",
}

type exportRow struct {
	TripID          string `json:"tripId"`
	TripTitle       string `json:"tripTitle"`
	TripStartDate   string `json:"tripStartDate"`
	TripEndDate     string `json:"tripEndDate"`
	DestinationName string `json:"destinationName,omitempty"`
	DestinationDate string `json:"destinationDate,omitempty"`
	DestinationTime string `json:"destinationTime,omitempty"`
	Address         string `json:"address,omitempty"`
	Notes           string `json:"notes,omitempty"`
	OrderIndex      int    `json:"orderIndex,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table of every trip/destination combination the caller
// owns. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Rows(r.Context(), middleware.CallerEmail(r.Context()))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRow, len(rows))
	for i, row := range rows {
		out[i] = exportRow(row)
	}
	respondJSON(w, http.StatusOK, out)
}

// writeCSV streams the rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	//nolint:errcheck — a failed write means the client is gone.
	cw.Write(csvHeaders)
	for _, r := range rows {
		orderIndex := ""
		if r.OrderIndex > 0 {
			orderIndex = strconv.Itoa(r.OrderIndex)
		}
		//nolint:errcheck
		cw.Write([]string{
			r.TripID, r.TripTitle, r.TripStartDate, r.TripEndDate,
			r.DestinationName, r.DestinationDate, r.DestinationTime,
			r.Address, r.Notes, orderIndex,
		})
	}
	cw.Flush()
}
