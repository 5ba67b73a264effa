package punch

import (
	"github.com/cmlabs-hris/chronos-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	EmployeeID string   `json:"-"`
	Kind       Kind     `json:"type"`
	PIN        string   `json:"pin"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of IN, OUT, BREAK_START, BREAK_END",
		})
	}

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be sent together",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	Punch Punch `json:"punch"`
	// QueuedForSync is true when the punch was stored while offline.
	QueuedForSync bool `json:"queued_for_sync"`
	// DistanceMeters is the distance from the office, when a location was sent.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

type TodayResponse struct {
	Punches     []Punch `json:"punches"`
	OnBreak     bool    `json:"on_break"`
	WorkedHours float64 `json:"worked_hours"`
	PendingSync int     `json:"pending_sync"`
}
