package employee

import (
	"context"
)

// EmployeeService defines business logic for employee administration
type EmployeeService interface {
	// ListEmployees returns every employee in display order
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee registers a new active employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee edits an employee; an empty PIN keeps the current one
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and cascades to its punches and alerts
	DeleteEmployee(ctx context.Context, id string) error

	// FindByPIN returns the employee owning pin
	FindByPIN(ctx context.Context, pin string) (Employee, error)

	// EnsureDefaultAdmin creates the bootstrap administrator when no employee exists
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
}
