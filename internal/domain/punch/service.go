package punch

import "context"

type PunchService interface {
	// Record confirms the PIN, stores the punch and runs the overtime check on OUT.
	Record(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// Today returns the newest punches of the current day for employeeID.
	Today(ctx context.Context, employeeID string) (TodayResponse, error)
}
