package entities

import "time"

// ValidationResult mirrors booking.Result on the wire. Error fields are
// empty when the corresponding check passed; the conflict slot is included
// so clients can show the colliding booking.
type ValidationResult struct {
	Valid               bool       `json:"valid"`
	OperatingHoursError string     `json:"operating_hours_error,omitempty"`
	PastTimeError       string     `json:"past_time_error,omitempty"`
	ConflictError       string     `json:"conflict_error,omitempty"`
	ConflictStart       *time.Time `json:"conflict_start,omitempty"`
	ConflictEnd         *time.Time `json:"conflict_end,omitempty"`
}
