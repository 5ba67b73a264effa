package dashboard

import "github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the admin dashboard endpoint
type DashboardResponse struct {
	Stats        StatsResponse   `json:"stats"`
	WeeklyChart  []DailyPresence `json:"weekly_chart"`
	UnreadAlerts []alert.Alert   `json:"unread_alerts"`
	NewAlerts    int             `json:"new_alerts"`
}

// ========== STATS ==========

type StatsResponse struct {
	PresentToday       int    `json:"present_today"`
	TotalEmployees     int    `json:"total_employees"`
	PunchesThisMonth   int    `json:"punches_this_month"`
	UnreadInconsistent int    `json:"unread_inconsistencies"` // unread MISSING_POINT and DELAY
	DelayTolerance     int    `json:"delay_tolerance"`
	Date               string `json:"date"` // YYYY-MM-DD
}

// ========== WEEKLY PRESENCE ==========

// DailyPresence counts distinct employees with at least one punch on Date
type DailyPresence struct {
	Date    string `json:"date"`  // YYYY-MM-DD
	Label   string `json:"label"` // DD/MM
	Present int    `json:"present"`
}
