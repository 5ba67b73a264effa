package employee

import (
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                string          `json:"role"`
	ContractHoursPerDay float64         `json:"contract_hours_per_day"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	PIN                 string          `json:"pin"`
	IsAdmin             bool            `json:"is_admin"`
	ExpectedStartTime   *string         `json:"expected_start_time,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ContractHoursPerDay == 0 {
		r.ContractHoursPerDay = DefaultContractHoursPerDay
	}

	errs = append(errs, validateProfile(r.Name, r.Email, r.ContractHoursPerDay, r.HourlyRate, r.ExpectedStartTime)...)

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest replaces the profile. A zero ContractHoursPerDay
// keeps the stored value.
type UpdateEmployeeRequest struct {
	ID                  string          `json:"-"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                string          `json:"role"`
	ContractHoursPerDay float64         `json:"contract_hours_per_day"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	PIN                 *string         `json:"pin,omitempty"`
	IsAdmin             bool            `json:"is_admin"`
	Active              *bool           `json:"active,omitempty"`
	ExpectedStartTime   *string         `json:"expected_start_time,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateProfile(r.Name, r.Email, r.ContractHoursPerDay, r.HourlyRate, r.ExpectedStartTime)...)

	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateProfile(name, email string, contractHours float64, rate decimal.Decimal, expectedStart *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if email != "" && !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if contractHours < 0 || contractHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "contract_hours_per_day",
			Message: "contract_hours_per_day must be between 0 and 24",
		})
	}

	if rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}

	if expectedStart != nil && *expectedStart != "" && !validator.IsValidClock(*expectedStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_start_time",
			Message: "expected_start_time must be in HH:mm format",
		})
	}

	return errs
}

type EmployeeResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email"`
	Role                string          `json:"role"`
	ContractHoursPerDay float64         `json:"contract_hours_per_day"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	Active              bool            `json:"active"`
	IsAdmin             bool            `json:"is_admin"`
	ExpectedStartTime   *string         `json:"expected_start_time,omitempty"`
	CreatedAt           int64           `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Email:               e.Email,
		Role:                e.Role,
		ContractHoursPerDay: e.ContractHoursPerDay,
		HourlyRate:          e.HourlyRate,
		Active:              e.Active,
		IsAdmin:             e.IsAdmin,
		ExpectedStartTime:   e.ExpectedStartTime,
		CreatedAt:           e.CreatedAt.UnixMilli(),
	}
}
