package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPINInUse):
		Conflict(w, "PIN already in use by another employee")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, "You cannot delete your own account", nil)

	// Punch domain errors
	case errors.Is(err, punch.ErrInvalidPIN):
		Unauthorized(w, "Invalid PIN")
	case errors.Is(err, punch.ErrInvalidKind):
		BadRequest(w, "Invalid punch type", nil)

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Invalid month", nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
