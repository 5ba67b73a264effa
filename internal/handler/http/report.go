package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/chronos-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/chronos-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetPayrollReport(w http.ResponseWriter, r *http.Request)
	ExportPayrollReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewReportHandler(payrollService payroll.PayrollService) ReportHandler {
	return &reportHandlerImpl{
		payrollService: payrollService,
	}
}

func payrollRequestFromQuery(r *http.Request) payroll.ReportRequest {
	return payroll.ReportRequest{
		Month:  r.URL.Query().Get("month"), // YYYY-MM, default: current month
		Search: r.URL.Query().Get("search"),
	}
}

// GetPayrollReport handles GET /reports/payroll
func (h *reportHandlerImpl) GetPayrollReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Report(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportPayrollReport handles GET /reports/payroll/export
func (h *reportHandlerImpl) ExportPayrollReport(w http.ResponseWriter, r *http.Request) {
	export, err := h.payrollService.ExportCSV(r.Context(), payrollRequestFromQuery(r))
	if err != nil {
		slog.Error("Payroll export error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "text/csv; charset=utf-8", export.FileName, export.Content)
}
