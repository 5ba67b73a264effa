package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	employee.EmployeeRepository
	punch.PunchRepository
	clock clock.Clock
}

func NewPayrollService(employeeRepo employee.EmployeeRepository, punchRepo punch.PunchRepository, clk clock.Clock) payroll.PayrollService {
	return &PayrollServiceImpl{
		EmployeeRepository: employeeRepo,
		PunchRepository:    punchRepo,
		clock:              clk,
	}
}

// Report implements payroll.PayrollService.
func (s *PayrollServiceImpl) Report(ctx context.Context, req payroll.ReportRequest) (payroll.ReportResponse, error) {
	if req.Month == "" {
		req.Month = s.clock.Now().Format(calendar.MonthLayout)
	}
	if err := req.Validate(); err != nil {
		return payroll.ReportResponse{}, err
	}

	monthStart, err := calendar.ParseMonth(req.Month, s.clock.Location())
	if err != nil {
		return payroll.ReportResponse{}, payroll.ErrInvalidMonth
	}

	var (
		employees []employee.Employee
		punches   []punch.Punch
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		punches, err = s.PunchRepository.ListBetween(gCtx, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return payroll.ReportResponse{}, err
	}

	rows := Aggregate(monthStart, employees, punches, req.Search)

	resp := payroll.ReportResponse{
		Month:          req.Month,
		BusinessDays:   calendar.BusinessDays(calendar.MonthDays(monthStart)),
		Rows:           rows,
		LowPerformance: []payroll.Row{},
		Inconsistent:   []payroll.Row{},
	}
	for _, r := range rows {
		if r.LowPerformance() {
			resp.LowPerformance = append(resp.LowPerformance, r)
		}
		if r.HasInconsistencies() {
			resp.Inconsistent = append(resp.Inconsistent, r)
		}
	}
	return resp, nil
}

// ExportCSV implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, req payroll.ReportRequest) (payroll.Export, error) {
	report, err := s.Report(ctx, req)
	if err != nil {
		return payroll.Export{}, err
	}

	content, err := WriteCSV(report.Rows)
	if err != nil {
		return payroll.Export{}, err
	}

	slog.Info("payroll exported", "month", report.Month, "rows", len(report.Rows))
	return payroll.Export{
		FileName: ExportFileName(report.Month),
		Content:  content,
	}, nil
}
