package booking

import (
	"fmt"
	"time"
)

// Window is a candidate reservation: a calendar date, a start time and a
// duration in hours. Only the year/month/day of Date are significant.
type Window struct {
	Date          time.Time
	Start         TimeOfDay
	DurationHours float64
}

// StartAt combines the window's date and start time into an instant with
// seconds and sub-seconds zeroed.
func (w Window) StartAt() time.Time {
	y, m, d := w.Date.Date()
	return time.Date(y, m, d, w.Start.Hour, w.Start.Minute, 0, 0, w.Date.Location())
}

// EndAt is StartAt plus the duration. It may cross midnight; operating-hours
// validation rejects such windows separately.
func (w Window) EndAt() time.Time {
	return w.StartAt().Add(time.Duration(w.DurationHours * float64(time.Hour)))
}

// Reservation is an existing booking the validator checks a candidate
// against. FacilityKey is the exact key the booking was made under, which for
// a sub-venue is the composite key ("S1_2").
type Reservation struct {
	FacilityKey   string
	StartTime     time.Time
	DurationHours float64
}

func (r Reservation) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationHours * float64(time.Hour)))
}

// HoursError reports a window that falls outside a facility's operating
// hours or would cross midnight.
type HoursError struct {
	Message string
}

func (e *HoursError) Error() string { return e.Message }

// PastError reports a window whose start is not in the future.
type PastError struct {
	Message string
}

func (e *PastError) Error() string { return e.Message }

// ConflictError reports an overlap with an existing reservation and carries
// the conflicting slot so the caller can show it.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot unavailable: conflicts with an existing booking from %s to %s",
		e.Start.Format("15:04"), e.End.Format("15:04"))
}

// Result aggregates the independent validation outcomes for one candidate
// window. Valid is true only when every field is nil.
type Result struct {
	Valid          bool
	OperatingHours *HoursError
	PastTime       *PastError
	Conflict       *ConflictError
}

// Durations a booking may have, in hours.
var allowedDurations = []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0}

// ValidDuration reports whether d is one of the offered duration steps.
func ValidDuration(d float64) bool {
	for _, v := range allowedDurations {
		if d == v {
			return true
		}
	}
	return false
}

// CheckOperatingHours validates the window against the facility's open/close
// times. Boundaries are inclusive: starting exactly at opening or ending
// exactly at closing is fine.
func CheckOperatingHours(w Window, hours OperatingHours) *HoursError {
	if w.Start.Minutes() < hours.Open.Minutes() {
		return &HoursError{
			Message: fmt.Sprintf("reservation starts before facility opening time (%s)", hours.Open),
		}
	}
	end, err := ComputeEnd(w.Start, w.DurationHours)
	if err != nil {
		return &HoursError{Message: ErrPastMidnight.Error()}
	}
	if end.Minutes() > hours.Close.Minutes() {
		return &HoursError{
			Message: fmt.Sprintf("reservation exceeds facility closing time (%s)", hours.Close),
		}
	}
	return nil
}

// CheckNotPast rejects windows that start at or before now. Booking "right
// now" is disallowed; one second into the future is accepted.
func CheckNotPast(w Window, now time.Time) *PastError {
	if !w.StartAt().After(now) {
		return &PastError{Message: "cannot book a reservation in the past"}
	}
	return nil
}

// CheckNoConflict compares the candidate window against existing reservations
// for the same facility key. Intervals are half-open, so back-to-back
// bookings do not conflict. Reservations under other keys are ignored,
// including a sub-venue's parent.
func CheckNoConflict(w Window, facilityKey string, existing []Reservation) *ConflictError {
	candStart := w.StartAt()
	candEnd := w.EndAt()
	for _, res := range existing {
		if res.FacilityKey != facilityKey {
			continue
		}
		resEnd := res.EndTime()
		if candStart.Before(resEnd) && res.StartTime.Before(candEnd) {
			return &ConflictError{Start: res.StartTime, End: resEnd}
		}
	}
	return nil
}

// Validate runs the three checks independently and aggregates them. It is a
// pure function of its arguments and cheap enough to re-run on every input
// change.
func Validate(w Window, hours OperatingHours, existing []Reservation, facilityKey string, now time.Time) Result {
	r := Result{
		OperatingHours: CheckOperatingHours(w, hours),
		PastTime:       CheckNotPast(w, now),
		Conflict:       CheckNoConflict(w, facilityKey, existing),
	}
	r.Valid = r.OperatingHours == nil && r.PastTime == nil && r.Conflict == nil
	return r
}
