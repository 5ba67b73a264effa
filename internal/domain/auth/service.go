package auth

import (
	"context"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
)

type AuthService interface {
	// Login signs in the employee owning the PIN, bootstrapping the default
	// administrator when no employee exists yet.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
}
