package alert

import (
	"context"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
)

// CheckConsistency implements alert.AlertService. For every weekday of the
// trailing week a monitored employee with no punches gets a TOTAL alert and
// one with an odd number of punches gets a PARTIAL alert.
func (s *AlertServiceImpl) CheckConsistency(ctx context.Context) ([]alert.Alert, error) {
	employees, err := s.monitored(ctx)
	if err != nil {
		return nil, err
	}

	days := s.checkDays()
	grouped, err := s.windowPunches(ctx, calendar.TrailingDays(s.clock.Now(), CheckWindowDays))
	if err != nil {
		return nil, err
	}

	var raised []alert.Alert
	for _, e := range employees {
		for _, day := range days {
			date := calendar.DateKey(day)
			count := len(grouped[e.ID][date])

			var missing alert.MissingType
			switch {
			case count == 0:
				missing = alert.MissingTotal
			case count%2 != 0:
				missing = alert.MissingPartial
			default:
				continue
			}

			a := newMissingAlert(e.ID, e.Name, day, missing)
			inserted, err := s.insert(ctx, a)
			if err != nil {
				return raised, err
			}
			if inserted {
				raised = append(raised, a)
			}
		}
	}
	return raised, nil
}
