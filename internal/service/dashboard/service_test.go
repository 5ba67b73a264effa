package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/alert"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	alertservice "github.com/cmlabs-hris/chronos-backend-go/internal/service/alert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	clk := clock.Fixed{At: now}

	db := kv.NewDB(kvstore.NewMemory())
	employees := kv.NewEmployeeRepository(db)
	punches := kv.NewPunchRepository(db)
	alerts := kv.NewAlertRepository(db)
	settings := kv.NewSettingRepository(db)
	alertSvc := alertservice.NewAlertService(alerts, employees, punches, settings, clk, nil)
	svc := NewDashboardService(alertSvc, employees, punches, settings, clk)

	_, err := employees.Create(ctx, employee.Employee{ID: "admin", Name: "Admin", Active: true, IsAdmin: true})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{ID: "ana", Name: "Ana", Active: true, ContractHoursPerDay: 8})
	require.NoError(t, err)

	for _, p := range []punch.Punch{
		{EmployeeID: "ana", Kind: punch.KindIn, Timestamp: now.Add(-2 * time.Hour)},
		{EmployeeID: "admin", Kind: punch.KindIn, Timestamp: now.Add(-time.Hour)},
		{EmployeeID: "ana", Kind: punch.KindIn, Timestamp: now.AddDate(0, 0, -1)},
		{EmployeeID: "ana", Kind: punch.KindOut, Timestamp: now.AddDate(0, 0, -1).Add(8 * time.Hour)},
		{EmployeeID: "ana", Kind: punch.KindIn, Timestamp: now.AddDate(0, -1, 0)},
	} {
		_, err := punches.Append(ctx, p)
		require.NoError(t, err)
	}
	_, err = alerts.InsertIfAbsent(ctx, alert.Alert{ID: "ot", Kind: alert.KindOvertime, EmployeeID: "ana", Date: "2026-10-15"})
	require.NoError(t, err)

	resp, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Stats.PresentToday)
	assert.Equal(t, 2, resp.Stats.TotalEmployees)
	assert.Equal(t, 4, resp.Stats.PunchesThisMonth)
	assert.Equal(t, 15, resp.Stats.DelayTolerance)
	assert.Equal(t, "2026-10-16", resp.Stats.Date)

	// Ana missed Fri 09 and Mon 12 to Wed 14.
	assert.Equal(t, 4, resp.NewAlerts)
	assert.Equal(t, 4, resp.Stats.UnreadInconsistent)
	assert.Len(t, resp.UnreadAlerts, 5)

	require.Len(t, resp.WeeklyChart, 7)
	assert.Equal(t, "2026-10-10", resp.WeeklyChart[0].Date)
	assert.Equal(t, "16/10", resp.WeeklyChart[6].Label)
	assert.Equal(t, 2, resp.WeeklyChart[6].Present)
	assert.Equal(t, 1, resp.WeeklyChart[5].Present)
	assert.Equal(t, 0, resp.WeeklyChart[4].Present)

	again, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.NewAlerts)
	assert.Equal(t, 4, again.Stats.UnreadInconsistent)
}
