package payroll

import "context"

type PayrollService interface {
	// Report aggregates every employee's punches for the requested month.
	Report(ctx context.Context, req ReportRequest) (ReportResponse, error)

	// ExportCSV renders Report as a CSV file.
	ExportCSV(ctx context.Context, req ReportRequest) (Export, error)
}
