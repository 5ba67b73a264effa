package alert

import (
	"context"
	"time"
)

type AlertService interface {
	// CheckConsistency raises MISSING_POINT alerts for the trailing week.
	CheckConsistency(ctx context.Context) ([]Alert, error)

	// CheckLateness raises DELAY alerts for the trailing week.
	CheckLateness(ctx context.Context) ([]Alert, error)

	// CheckOvertime raises an OVERTIME alert when employeeID worked more than
	// the contract on the day containing at.
	CheckOvertime(ctx context.Context, employeeID string, at time.Time) (*Alert, error)

	// RunChecks runs the consistency and lateness checks in sequence.
	RunChecks(ctx context.Context) ([]Alert, error)

	ListAlerts(ctx context.Context, filter AlertFilter) ([]Alert, error)
	MarkAsRead(ctx context.Context, id string) error
}
