package punch

import (
	"context"
	"time"
)

// PunchRepository is the append-only punch log. Listing methods return
// punches in insertion order; callers sort when they need time order.
type PunchRepository interface {
	Append(ctx context.Context, newPunch Punch) (Punch, error)

	// ListByEmployeeBetween returns employeeID's punches in [from, to).
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Punch, error)

	// ListBetween returns every punch in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]Punch, error)

	ListUnsynced(ctx context.Context) ([]Punch, error)
	CountUnsynced(ctx context.Context) (int, error)
	MarkSynced(ctx context.Context, ids []string) error

	DeleteByEmployee(ctx context.Context, employeeID string) error
}
