package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultContractHoursPerDay = 8.0

type Employee struct {
	ID                  string
	Name                string
	Email               string
	Role                string
	ContractHoursPerDay float64
	HourlyRate          decimal.Decimal
	Active              bool
	IsAdmin             bool
	PINHash             string
	ExpectedStartTime   *string // HH:mm
	CreatedAt           time.Time
}

// HasExpectedStart reports whether lateness can be evaluated for e.
func (e Employee) HasExpectedStart() bool {
	return e.ExpectedStartTime != nil && *e.ExpectedStartTime != ""
}

// Monitored reports whether e takes part in attendance checks.
// Administrators and inactive employees are never checked.
func (e Employee) Monitored() bool {
	return e.Active && !e.IsAdmin
}
