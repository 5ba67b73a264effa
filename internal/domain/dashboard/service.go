package dashboard

import "context"

// DashboardService builds the admin dashboard
type DashboardService interface {
	// GetDashboard re-runs the attendance checks and returns stats and unread alerts
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
