package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
)

// CheckLateness implements alert.AlertService. The first IN of each weekday
// in the trailing week is compared with the employee's expected start; a
// delay strictly greater than the configured tolerance raises a DELAY alert.
func (s *AlertServiceImpl) CheckLateness(ctx context.Context) ([]alert.Alert, error) {
	cfg, err := s.SettingRepository.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	employees, err := s.monitored(ctx)
	if err != nil {
		return nil, err
	}

	days := s.checkDays()
	grouped, err := s.windowPunches(ctx, calendar.TrailingDays(s.clock.Now(), CheckWindowDays))
	if err != nil {
		return nil, err
	}

	loc := s.clock.Location()
	var raised []alert.Alert
	for _, e := range employees {
		if !e.HasExpectedStart() {
			continue
		}
		for _, day := range days {
			dayPunches := grouped[e.ID][calendar.DateKey(day)]
			firstIn, ok := firstOfKind(dayPunches, punch.KindIn)
			if !ok {
				continue
			}

			expected, err := calendar.At(day, *e.ExpectedStartTime)
			if err != nil {
				slog.Warn("skipping lateness check", "employee_id", e.ID, "error", err)
				break
			}

			actual := firstIn.Timestamp.In(loc)
			delay := calendar.MinutesBetween(expected, actual)
			if delay <= cfg.DelayTolerance {
				continue
			}

			a := newDelayAlert(e.ID, e.Name, day, delay, expected, actual)
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

func firstOfKind(sorted []punch.Punch, kind punch.Kind) (punch.Punch, bool) {
	for _, p := range sorted {
		if p.Kind == kind {
			return p, true
		}
	}
	return punch.Punch{}, false
}
