package alert

import "context"

type AlertRepository interface {
	// InsertIfAbsent stores a unless an alert with the same
	// (employee, date, kind) exists. The first insert wins.
	InsertIfAbsent(ctx context.Context, a Alert) (bool, error)

	// List returns alerts newest first.
	List(ctx context.Context, filter AlertFilter) ([]Alert, error)

	MarkAsRead(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
