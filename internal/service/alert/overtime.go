package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
)

// CheckOvertime implements alert.AlertService. It returns the alert when one
// was inserted and nil otherwise.
func (s *AlertServiceImpl) CheckOvertime(ctx context.Context, employeeID string, at time.Time) (*alert.Alert, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	day := calendar.StartOfDay(at.In(s.clock.Location()))
	punches, err := s.PunchRepository.ListByEmployeeBetween(ctx, employeeID, day, calendar.EndOfDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}
	punch.SortByTime(punches)

	hours := punch.WorkedHours(punches)
	if hours <= e.ContractHoursPerDay {
		return nil, nil
	}

	a := newOvertimeAlert(e.ID, e.Name, day, hours, e.ContractHoursPerDay)
	inserted, err := s.insert(ctx, a)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	return &a, nil
}
