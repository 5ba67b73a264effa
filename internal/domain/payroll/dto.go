package payroll

import (
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
)

type ReportRequest struct {
	Month  string `json:"month"`  // YYYY-MM
	Search string `json:"search"` // case-insensitive name substring
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(r.Search) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "search",
			Message: "search must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportResponse struct {
	Month          string `json:"month"`
	BusinessDays   int    `json:"business_days"`
	Rows           []Row  `json:"rows"`
	LowPerformance []Row  `json:"low_performance"`
	Inconsistent   []Row  `json:"inconsistent"`
}

type Export struct {
	FileName string
	Content  []byte
}
