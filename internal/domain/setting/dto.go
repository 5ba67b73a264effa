package setting

import "github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"

type UpdateSettingsRequest struct {
	DelayTolerance *int `json:"delay_tolerance"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DelayTolerance == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "delay_tolerance",
			Message: "delay_tolerance is required",
		})
	} else if *r.DelayTolerance < 0 || *r.DelayTolerance > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "delay_tolerance",
			Message: "delay_tolerance must be between 0 and 240 minutes",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
