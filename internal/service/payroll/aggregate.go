package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// Aggregate derives one payroll row per employee for the month starting at
// monthStart. Worked time counts every day of the month; missing and
// incomplete days are only reported for weekdays. Rows whose employee name
// does not contain search (case-insensitive) are dropped after computation.
func Aggregate(monthStart time.Time, employees []employee.Employee, punches []punch.Punch, search string) []payroll.Row {
	days := calendar.MonthDays(monthStart)
	businessDays := calendar.BusinessDays(days)
	loc := monthStart.Location()

	byEmployee := make(map[string]map[string][]punch.Punch)
	for _, p := range punches {
		key := calendar.DateKey(p.Timestamp.In(loc))
		if byEmployee[p.EmployeeID] == nil {
			byEmployee[p.EmployeeID] = make(map[string][]punch.Punch)
		}
		byEmployee[p.EmployeeID][key] = append(byEmployee[p.EmployeeID][key], p)
	}

	needle := strings.ToLower(search)
	rows := make([]payroll.Row, 0, len(employees))
	for _, e := range employees {
		row := aggregateEmployee(e, days, businessDays, byEmployee[e.ID])
		if needle != "" && !strings.Contains(strings.ToLower(row.EmployeeName), needle) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func aggregateEmployee(e employee.Employee, days []time.Time, businessDays int, byDay map[string][]punch.Punch) payroll.Row {
	row := payroll.Row{
		EmployeeID:     e.ID,
		EmployeeName:   e.Name,
		Role:           e.Role,
		HourlyRate:     e.HourlyRate,
		MissingDays:    []string{},
		IncompleteDays: []string{},
	}

	var worked time.Duration
	for _, day := range days {
		dayPunches := punch.Sorted(byDay[calendar.DateKey(day)])

		if !calendar.IsWeekend(day) {
			switch {
			case len(dayPunches) == 0:
				row.MissingDays = append(row.MissingDays, calendar.ShortDate(day))
			case !punch.Complete(dayPunches):
				row.IncompleteDays = append(row.IncompleteDays, calendar.ShortDate(day))
			}
		}

		worked += punch.WorkedDuration(dayPunches)
	}

	row.TotalHours = worked.Hours()
	row.ExpectedHours = float64(businessDays) * e.ContractHoursPerDay
	row.BalanceHours = row.TotalHours - row.ExpectedHours
	row.TotalPayment = decimal.NewFromFloat(row.TotalHours).Mul(e.HourlyRate)
	row.PerformanceRatio = 1
	if row.ExpectedHours > 0 {
		row.PerformanceRatio = row.TotalHours / row.ExpectedHours
	}
	return row
}
