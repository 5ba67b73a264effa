package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/sse"
)

// CheckWindowDays is how many past calendar days the consistency and
// lateness checks look at. The current day is never checked.
const CheckWindowDays = 7

// EventAlertCreated is the SSE event name for newly inserted alerts.
const EventAlertCreated = "alert.created"

type AlertServiceImpl struct {
	alert.AlertRepository
	employee.EmployeeRepository
	punch.PunchRepository
	setting.SettingRepository
	clock clock.Clock
	hub   *sse.Hub
}

func NewAlertService(
	alertRepo alert.AlertRepository,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	settingRepo setting.SettingRepository,
	clk clock.Clock,
	hub *sse.Hub,
) alert.AlertService {
	return &AlertServiceImpl{
		AlertRepository:    alertRepo,
		EmployeeRepository: employeeRepo,
		PunchRepository:    punchRepo,
		SettingRepository:  settingRepo,
		clock:              clk,
		hub:                hub,
	}
}

// RunChecks implements alert.AlertService.
func (s *AlertServiceImpl) RunChecks(ctx context.Context) ([]alert.Alert, error) {
	missing, err := s.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}
	late, err := s.CheckLateness(ctx)
	if err != nil {
		return nil, err
	}
	return append(missing, late...), nil
}

// ListAlerts implements alert.AlertService.
func (s *AlertServiceImpl) ListAlerts(ctx context.Context, filter alert.AlertFilter) ([]alert.Alert, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	alerts, err := s.AlertRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// MarkAsRead implements alert.AlertService.
func (s *AlertServiceImpl) MarkAsRead(ctx context.Context, id string) error {
	return s.AlertRepository.MarkAsRead(ctx, id)
}

// insert stores a unless its key already exists and announces new alerts.
func (s *AlertServiceImpl) insert(ctx context.Context, a alert.Alert) (bool, error) {
	a.CreatedAt = s.clock.Now()

	inserted, err := s.AlertRepository.InsertIfAbsent(ctx, a)
	if err != nil {
		return false, fmt.Errorf("failed to insert alert %s: %w", a.ID, err)
	}
	if !inserted {
		return false, nil
	}

	slog.Info("alert raised", "alert_id", a.ID, "type", a.Kind, "employee_id", a.EmployeeID, "date", a.Date)
	if s.hub != nil {
		s.hub.Publish(sse.TopicAdmins, sse.Event{Event: EventAlertCreated, Data: a})
	}
	return true, nil
}

// windowPunches loads the punches of the check window grouped by employee
// and local day key, each day sorted ascending.
func (s *AlertServiceImpl) windowPunches(ctx context.Context, days []time.Time) (map[string]map[string][]punch.Punch, error) {
	if len(days) == 0 {
		return nil, nil
	}
	from := days[len(days)-1]
	to := calendar.EndOfDay(days[0])

	punches, err := s.PunchRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load punches: %w", err)
	}

	loc := s.clock.Location()
	grouped := make(map[string]map[string][]punch.Punch)
	for _, p := range punches {
		key := calendar.DateKey(p.Timestamp.In(loc))
		if grouped[p.EmployeeID] == nil {
			grouped[p.EmployeeID] = make(map[string][]punch.Punch)
		}
		grouped[p.EmployeeID][key] = append(grouped[p.EmployeeID][key], p)
	}
	for _, byDay := range grouped {
		for _, dayPunches := range byDay {
			punch.SortByTime(dayPunches)
		}
	}
	return grouped, nil
}

// monitored returns the employees subject to the weekly checks.
func (s *AlertServiceImpl) monitored(ctx context.Context) ([]employee.Employee, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Monitored() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *AlertServiceImpl) checkDays() []time.Time {
	var days []time.Time
	for _, d := range calendar.TrailingDays(s.clock.Now(), CheckWindowDays) {
		if !calendar.IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}
