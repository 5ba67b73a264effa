package payroll

import (
	"github.com/shopspring/decimal"
)

// Row is one employee's derived monthly payroll line.
type Row struct {
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Role             string          `json:"role"`
	TotalHours       float64         `json:"total_hours"`
	ExpectedHours    float64         `json:"expected_hours"`
	BalanceHours     float64         `json:"balance_hours"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	TotalPayment     decimal.Decimal `json:"total_payment"`
	PerformanceRatio float64         `json:"performance_ratio"`
	MissingDays      []string        `json:"missing_days"`    // DD/MM
	IncompleteDays   []string        `json:"incomplete_days"` // DD/MM
}

// LowPerformanceRatio is the ratio under which a row is flagged.
const LowPerformanceRatio = 0.5

func (r Row) LowPerformance() bool {
	return r.PerformanceRatio < LowPerformanceRatio && r.ExpectedHours > 0
}

func (r Row) HasInconsistencies() bool {
	return len(r.MissingDays) > 0 || len(r.IncompleteDays) > 0
}
