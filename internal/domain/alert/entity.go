package alert

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindOvertime     Kind = "OVERTIME"
	KindMissingPoint Kind = "MISSING_POINT"
	KindDelay        Kind = "DELAY"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindOvertime, KindMissingPoint, KindDelay:
		return true
	}
	return false
}

type MissingType string

const (
	MissingTotal   MissingType = "TOTAL"
	MissingPartial MissingType = "PARTIAL"
)

type Details struct {
	HoursWorked   *float64     `json:"hours_worked,omitempty"`
	ContractHours *float64     `json:"contract_hours,omitempty"`
	MissingType   *MissingType `json:"missing_type,omitempty"`
	DelayMinutes  *int         `json:"delay_minutes,omitempty"`
	ExpectedTime  *string      `json:"expected_time,omitempty"`
	ActualTime    *string      `json:"actual_time,omitempty"`
}

// Alert is a derived attendance anomaly. At most one alert exists per
// (EmployeeID, Date, Kind).
type Alert struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"type"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	Details      Details   `json:"details"`
}

// SameKey reports whether a and b share the dedup key.
func (a Alert) SameKey(b Alert) bool {
	return a.EmployeeID == b.EmployeeID && a.Date == b.Date && a.Kind == b.Kind
}

func OvertimeID(employeeID, date string) string {
	return fmt.Sprintf("overtime-%s-%s", employeeID, date)
}

func MissingID(missing MissingType, employeeID, date string) string {
	if missing == MissingTotal {
		return fmt.Sprintf("missing-total-%s-%s", employeeID, date)
	}
	return fmt.Sprintf("missing-partial-%s-%s", employeeID, date)
}

func DelayID(employeeID, date string) string {
	return fmt.Sprintf("delay-%s-%s", employeeID, date)
}
