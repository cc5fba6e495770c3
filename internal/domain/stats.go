package domain

// DashboardStats is the per-user rollup shown on the dashboard.
// TotalExpenses is a placeholder: no expense subsystem exists yet, so the
// service fills in a fixed amount. The field stays in the contract so clients
// do not break when a real accumulator lands.
type DashboardStats struct {
	TotalTrips        int     `json:"totalTrips"`
	TotalDestinations int     `json:"totalDestinations"`
	TotalExpenses     float64 `json:"totalExpenses"`
	UpcomingTrips     int     `json:"upcomingTrips"`
}
