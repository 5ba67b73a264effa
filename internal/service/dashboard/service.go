package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

// ChartDays is the number of days, today included, in the presence chart.
const ChartDays = 7

type DashboardServiceImpl struct {
	alertService alert.AlertService
	employee.EmployeeRepository
	punch.PunchRepository
	setting.SettingRepository
	clock clock.Clock
}

func NewDashboardService(
	alertService alert.AlertService,
	employeeRepo employee.EmployeeRepository,
	punchRepo punch.PunchRepository,
	settingRepo setting.SettingRepository,
	clk clock.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		alertService:       alertService,
		EmployeeRepository: employeeRepo,
		PunchRepository:    punchRepo,
		SettingRepository:  settingRepo,
		clock:              clk,
	}
}

// GetDashboard re-derives the weekly alerts, then loads the dashboard data
// in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	raised, err := s.alertService.RunChecks(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to run attendance checks: %w", err)
	}

	now := s.clock.Now()
	days := calendar.LastDays(now, ChartDays)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := days[0]
	if monthStart.Before(from) {
		from = monthStart
	}

	var (
		employees []employee.Employee
		punches   []punch.Punch
		unread    []alert.Alert
		cfg       setting.SystemConfig
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employees
	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.List(gCtx)
		return err
	})

	// 2. Punches of the chart window and the current month
	g.Go(func() error {
		var err error
		punches, err = s.PunchRepository.ListBetween(gCtx, from, calendar.EndOfDay(now))
		return err
	})

	// 3. Unread alerts
	g.Go(func() error {
		var err error
		unread, err = s.alertService.ListAlerts(gCtx, alert.AlertFilter{UnreadOnly: true})
		return err
	})

	// 4. Settings
	g.Go(func() error {
		var err error
		cfg, err = s.SettingRepository.Get(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to load dashboard: %w", err)
	}

	loc := s.clock.Location()
	presentByDay := make(map[string]map[string]struct{})
	punchesThisMonth := 0
	for _, p := range punches {
		local := p.Timestamp.In(loc)
		if !local.Before(monthStart) {
			punchesThisMonth++
		}
		key := calendar.DateKey(local)
		if presentByDay[key] == nil {
			presentByDay[key] = make(map[string]struct{})
		}
		presentByDay[key][p.EmployeeID] = struct{}{}
	}

	chart := make([]dashboard.DailyPresence, 0, len(days))
	for _, day := range days {
		key := calendar.DateKey(day)
		chart = append(chart, dashboard.DailyPresence{
			Date:    key,
			Label:   calendar.ShortDate(day),
			Present: len(presentByDay[key]),
		})
	}

	inconsistent := 0
	for _, a := range unread {
		if a.Kind == alert.KindMissingPoint || a.Kind == alert.KindDelay {
			inconsistent++
		}
	}

	return dashboard.DashboardResponse{
		Stats: dashboard.StatsResponse{
			PresentToday:       len(presentByDay[calendar.DateKey(now)]),
			TotalEmployees:     len(employees),
			PunchesThisMonth:   punchesThisMonth,
			UnreadInconsistent: inconsistent,
			DelayTolerance:     cfg.DelayTolerance,
			Date:               calendar.DateKey(now),
		},
		WeeklyChart:  chart,
		UnreadAlerts: unread,
		NewAlerts:    len(raised),
	}, nil
}
