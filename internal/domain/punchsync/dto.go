package punchsync

import "github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"

type ConnectivityRequest struct {
	Online *bool `json:"online"`
}

func (r *ConnectivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Online == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "online",
			Message: "online is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TriggerResponse struct {
	Started bool   `json:"started"`
	Status  Status `json:"status"`
}
