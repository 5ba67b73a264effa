package employee

import "context"

// EmployeeRepository stores employees in insertion order, which is also
// display order.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, updated Employee) error
	// Delete removes the employee together with its punches and alerts.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
