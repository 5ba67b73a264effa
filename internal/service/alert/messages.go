package alert

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
)

const displayDate = "02/01/2006"

func newMissingAlert(employeeID, name string, day time.Time, missing alert.MissingType) alert.Alert {
	date := calendar.DateKey(day)
	msg := fmt.Sprintf("%s has no punches on %s", name, day.Format(displayDate))
	if missing == alert.MissingPartial {
		msg = fmt.Sprintf("%s has an incomplete punch sequence on %s", name, day.Format(displayDate))
	}

	return alert.Alert{
		ID:           alert.MissingID(missing, employeeID, date),
		Kind:         alert.KindMissingPoint,
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Message:      msg,
		Details:      alert.Details{MissingType: &missing},
	}
}

func newDelayAlert(employeeID, name string, day time.Time, delay int, expected, actual time.Time) alert.Alert {
	date := calendar.DateKey(day)
	expectedStr := expected.Format(calendar.ClockLayout)
	actualStr := actual.Format(calendar.ClockLayout)

	return alert.Alert{
		ID:           alert.DelayID(employeeID, date),
		Kind:         alert.KindDelay,
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Message: fmt.Sprintf("%s arrived %d minutes late on %s (expected %s, clocked in %s)",
			name, delay, day.Format(displayDate), expectedStr, actualStr),
		Details: alert.Details{
			DelayMinutes: &delay,
			ExpectedTime: &expectedStr,
			ActualTime:   &actualStr,
		},
	}
}

func newOvertimeAlert(employeeID, name string, day time.Time, hours, contract float64) alert.Alert {
	date := calendar.DateKey(day)

	return alert.Alert{
		ID:           alert.OvertimeID(employeeID, date),
		Kind:         alert.KindOvertime,
		EmployeeID:   employeeID,
		EmployeeName: name,
		Date:         date,
		Message:      fmt.Sprintf("%s worked %.1fh on %s, above the %.1fh contract", name, hours, day.Format(displayDate), contract),
		Details: alert.Details{
			HoursWorked:   &hours,
			ContractHours: &contract,
		},
	}
}
