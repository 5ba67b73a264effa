package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/kvstore"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/chronos-backend-go/internal/repository/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var september = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hhmm string, kind punch.Kind, employeeID string) punch.Punch {
	ts, err := calendar.At(day, hhmm)
	if err != nil {
		panic(err)
	}
	return punch.Punch{EmployeeID: employeeID, Kind: kind, Timestamp: ts}
}

// fullDay is 08:00-12:00 plus 13:00-17:00.
func fullDay(day time.Time, employeeID string) []punch.Punch {
	return []punch.Punch{
		at(day, "08:00", punch.KindIn, employeeID),
		at(day, "12:00", punch.KindBreakStart, employeeID),
		at(day, "13:00", punch.KindBreakEnd, employeeID),
		at(day, "17:00", punch.KindOut, employeeID),
	}
}

func TestAggregate_PerfectMonth(t *testing.T) {
	ana := employee.Employee{ID: "ana", Name: "Ana", Role: "Dev", ContractHoursPerDay: 8, HourlyRate: decimal.NewFromInt(20)}

	var punches []punch.Punch
	for _, day := range calendar.MonthDays(september) {
		if !calendar.IsWeekend(day) {
			punches = append(punches, fullDay(day, ana.ID)...)
		}
	}

	rows := Aggregate(september, []employee.Employee{ana}, punches, "")
	require.Len(t, rows, 1)

	r := rows[0]
	assert.InDelta(t, 176.0, r.TotalHours, 1e-9)
	assert.InDelta(t, 176.0, r.ExpectedHours, 1e-9)
	assert.InDelta(t, 0.0, r.BalanceHours, 1e-9)
	assert.True(t, decimal.NewFromInt(3520).Equal(r.TotalPayment), "got %s", r.TotalPayment)
	assert.InDelta(t, 1.0, r.PerformanceRatio, 1e-9)
	assert.Empty(t, r.MissingDays)
	assert.Empty(t, r.IncompleteDays)
	assert.False(t, r.LowPerformance())
}

func TestAggregate_MissingIncompleteAndWeekendWork(t *testing.T) {
	ana := employee.Employee{ID: "ana", Name: "Ana", ContractHoursPerDay: 8, HourlyRate: decimal.NewFromInt(10)}

	tuesday := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	wednesday := tuesday.AddDate(0, 0, 1)
	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	punches := append(fullDay(tuesday, ana.ID),
		at(wednesday, "08:00", punch.KindIn, ana.ID),
		at(wednesday, "12:00", punch.KindBreakStart, ana.ID),
		at(wednesday, "13:00", punch.KindBreakEnd, ana.ID),
		at(saturday, "09:00", punch.KindIn, ana.ID),
		at(saturday, "11:00", punch.KindOut, ana.ID),
		// Another employee's punches never leak in.
		at(wednesday, "09:00", punch.KindIn, "bruno"),
	)

	rows := Aggregate(september, []employee.Employee{ana}, punches, "")
	require.Len(t, rows, 1)
	r := rows[0]

	// 8h Tuesday + 4h Wednesday morning + 2h Saturday.
	assert.InDelta(t, 14.0, r.TotalHours, 1e-9)
	assert.Equal(t, []string{"02/09"}, r.IncompleteDays)
	assert.Len(t, r.MissingDays, 20)
	assert.NotContains(t, r.MissingDays, "01/09")
	assert.NotContains(t, r.MissingDays, "05/09")
	assert.Contains(t, r.MissingDays, "03/09")
	assert.True(t, r.LowPerformance())
	assert.True(t, r.HasInconsistencies())
}

func TestAggregate_ZeroContractAndSearch(t *testing.T) {
	employees := []employee.Employee{
		{ID: "a", Name: "Ana Souza", ContractHoursPerDay: 0, HourlyRate: decimal.Zero},
		{ID: "b", Name: "Bruno Lima", ContractHoursPerDay: 8, HourlyRate: decimal.Zero},
	}

	rows := Aggregate(september, employees, nil, "")
	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0].PerformanceRatio)
	assert.False(t, rows[0].LowPerformance())
	assert.Equal(t, 0.0, rows[1].PerformanceRatio)
	assert.True(t, rows[1].LowPerformance())

	rows = Aggregate(september, employees, nil, "SOUZA")
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].EmployeeID)

	assert.Empty(t, Aggregate(september, employees, nil, "zzz"))
}

func TestAggregate_DayBoundariesFollowLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	month := time.Date(2026, time.September, 1, 0, 0, 0, 0, brt)
	emp := employee.Employee{ID: "e", Name: "E", ContractHoursPerDay: 8}

	// 22:00-23:30 local on the 1st is 01:00-02:30 UTC on the 2nd.
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, brt)
	punches := []punch.Punch{at(day, "22:00", punch.KindIn, "e"), at(day, "23:30", punch.KindOut, "e")}
	for i := range punches {
		punches[i].Timestamp = punches[i].Timestamp.UTC()
	}

	rows := Aggregate(month, []employee.Employee{emp}, punches, "")
	require.Len(t, rows, 1)
	assert.InDelta(t, 1.5, rows[0].TotalHours, 1e-9)
	assert.NotContains(t, rows[0].MissingDays, "01/09")
	assert.Contains(t, rows[0].MissingDays, "02/09")
}

func TestReportAndExport(t *testing.T) {
	ctx := context.Background()
	db := kv.NewDB(kvstore.NewMemory())
	employees := kv.NewEmployeeRepository(db)
	punches := kv.NewPunchRepository(db)
	svc := NewPayrollService(employees, punches, clock.Fixed{At: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)})

	_, err := employees.Create(ctx, employee.Employee{ID: "ana", Name: "Ana, the Dev", Role: "Dev", ContractHoursPerDay: 8, HourlyRate: decimal.RequireFromString("20")})
	require.NoError(t, err)
	for _, day := range calendar.MonthDays(september) {
		if calendar.IsWeekend(day) {
			continue
		}
		for _, p := range fullDay(day, "ana") {
			_, err := punches.Append(ctx, p)
			require.NoError(t, err)
		}
	}

	report, err := svc.Report(ctx, payroll.ReportRequest{Month: "2026-09"})
	require.NoError(t, err)
	assert.Equal(t, 22, report.BusinessDays)
	require.Len(t, report.Rows, 1)
	assert.Empty(t, report.LowPerformance)
	assert.Empty(t, report.Inconsistent)

	export, err := svc.ExportCSV(ctx, payroll.ReportRequest{Month: "2026-09"})
	require.NoError(t, err)
	assert.Equal(t, "relatorio_pagamentos_2026-09.csv", export.FileName)

	records, err := csv.NewReader(bytes.NewReader(export.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Funcionário", records[0][0])
	assert.Equal(t, "Incompletos", records[0][8])
	assert.Equal(t, []string{"Ana, the Dev", "Dev", "176.0", "176", "0.0", "20.00", "3520.00", "", ""}, records[1])

	// Defaults to the current month.
	current, err := svc.Report(ctx, payroll.ReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-10", current.Month)

	_, err = svc.Report(ctx, payroll.ReportRequest{Month: "2026-13"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestWriteCSV_JoinsDayLists(t *testing.T) {
	content, err := WriteCSV([]payroll.Row{{
		EmployeeName:   "Bruno",
		Role:           "Ops",
		TotalHours:     10.26,
		ExpectedHours:  132.5,
		BalanceHours:   -122.24,
		HourlyRate:     decimal.RequireFromString("15.5"),
		TotalPayment:   decimal.RequireFromString("159.03"),
		MissingDays:    []string{"03/09", "04/09"},
		IncompleteDays: []string{"02/09"},
	}})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Bruno", "Ops", "10.3", "132.5", "-122.2", "15.50", "159.03", "03/09|04/09", "02/09"}, records[1])
}
