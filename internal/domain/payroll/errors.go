package payroll

import "errors"

var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
)
