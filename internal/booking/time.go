package booking

import (
	"errors"
	"fmt"
	"math"
)

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// OperatingHours is a facility's daily open/close window. Open <= Close;
// overnight-spanning facilities are not supported.
type OperatingHours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Defaults applied when a facility has no configured hours.
var (
	DefaultOpen  = TimeOfDay{Hour: 8}
	DefaultClose = TimeOfDay{Hour: 22}
)

var ErrPastMidnight = errors.New("reservation cannot extend past midnight")

// ParseOperatingTime parses a 4-digit 24h time string like "0800".
// Anything that is not exactly four ASCII digits with hour in [0,23] and
// minute in [0,59] is an error.
func ParseOperatingTime(s string) (TimeOfDay, error) {
	if len(s) != 4 {
		return TimeOfDay{}, fmt.Errorf("operating time %q: want 4 digits (HHMM)", s)
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return TimeOfDay{}, fmt.Errorf("operating time %q: non-digit character", s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[2]-'0')*10 + int(s[3]-'0')
	if hour > 23 {
		return TimeOfDay{}, fmt.Errorf("operating time %q: hour out of range", s)
	}
	if minute > 59 {
		return TimeOfDay{}, fmt.Errorf("operating time %q: minute out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// OperatingHoursFrom builds an OperatingHours from the raw "HHMM" strings
// stored on a facility. Empty or malformed fields fall back to the 08:00-22:00
// defaults, so callers never have to re-check the configuration.
func OperatingHoursFrom(open, close string) OperatingHours {
	h := OperatingHours{Open: DefaultOpen, Close: DefaultClose}
	if t, err := ParseOperatingTime(open); err == nil {
		h.Open = t
	}
	if t, err := ParseOperatingTime(close); err == nil {
		h.Close = t
	}
	return h
}

// ComputeEnd returns the end time of a window starting at start and lasting
// durationHours. Durations come in half-hour steps, so the minute count is
// always whole. Returns ErrPastMidnight when the window would cross into the
// next calendar day.
func ComputeEnd(start TimeOfDay, durationHours float64) (TimeOfDay, error) {
	total := start.Minutes() + int(math.Round(durationHours*60))
	if total >= 24*60 {
		return TimeOfDay{}, ErrPastMidnight
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}, nil
}
