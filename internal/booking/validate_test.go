package booking

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, minute int) time.Time {
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}

func TestCheckOperatingHours_Boundaries(t *testing.T) {
	hours := OperatingHours{Open: TimeOfDay{8, 0}, Close: TimeOfDay{22, 0}}
	date := day(2025, time.June, 1)

	cases := []struct {
		name     string
		start    TimeOfDay
		duration float64
		wantErr  string // substring, empty means valid
	}{
		{"starts exactly at open", TimeOfDay{8, 0}, 1.0, ""},
		{"ends exactly at close", TimeOfDay{21, 0}, 1.0, ""},
		{"one minute before open", TimeOfDay{7, 59}, 1.0, "before facility opening time (08:00)"},
		{"ends one minute past close", TimeOfDay{20, 31}, 1.5, "exceeds facility closing time (22:00)"},
		{"crosses midnight", TimeOfDay{23, 0}, 1.5, "past midnight"},
		{"mid-window", TimeOfDay{12, 0}, 2.0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOperatingHours(Window{Date: date, Start: tc.start, DurationHours: tc.duration}, hours)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("want valid, got %q", err.Message)
				}
				return
			}
			if err == nil {
				t.Fatalf("want error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Message, tc.wantErr) {
				t.Errorf("error %q does not contain %q", err.Message, tc.wantErr)
			}
		})
	}
}

func TestCheckOperatingHours_MidnightBeforeClose(t *testing.T) {
	// With a (misconfigured) close of 23:59, crossing midnight must still be
	// reported as the midnight case, not as exceeding closing time.
	hours := OperatingHours{Open: TimeOfDay{8, 0}, Close: TimeOfDay{23, 59}}
	err := CheckOperatingHours(Window{Date: day(2025, time.June, 1), Start: TimeOfDay{23, 0}, DurationHours: 1.5}, hours)
	if err == nil || !strings.Contains(err.Message, "midnight") {
		t.Fatalf("want midnight error, got %v", err)
	}
}

func TestCheckNotPast(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)

	cases := []struct {
		name  string
		start TimeOfDay
		date  time.Time
		valid bool
	}{
		{"in the past", TimeOfDay{9, 0}, day(2025, time.June, 1), false},
		{"exactly now", TimeOfDay{10, 0}, day(2025, time.June, 1), false},
		{"one minute ahead", TimeOfDay{10, 1}, day(2025, time.June, 1), true},
		{"next day", TimeOfDay{8, 0}, day(2025, time.June, 2), true},
		{"previous day", TimeOfDay{23, 0}, day(2025, time.May, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckNotPast(Window{Date: tc.date, Start: tc.start, DurationHours: 1.0}, now)
			if tc.valid && err != nil {
				t.Errorf("want valid, got %q", err.Message)
			}
			if !tc.valid && err == nil {
				t.Error("want past-time error, got nil")
			}
		})
	}
}

func TestCheckNotPast_OneSecondAfterNow(t *testing.T) {
	// The window instant has seconds zeroed; now one second earlier makes it
	// strictly future.
	now := time.Date(2025, time.June, 1, 9, 59, 59, 0, time.UTC)
	err := CheckNotPast(Window{Date: day(2025, time.June, 1), Start: TimeOfDay{10, 0}, DurationHours: 1.0}, now)
	if err != nil {
		t.Fatalf("window one second after now should be valid, got %q", err.Message)
	}
}

func TestCheckNoConflict(t *testing.T) {
	existing := []Reservation{
		{FacilityKey: "S1", StartTime: at(2025, time.June, 1, 10, 0), DurationHours: 1.0},
	}
	date := day(2025, time.June, 1)

	cases := []struct {
		name     string
		start    TimeOfDay
		duration float64
		key      string
		conflict bool
	}{
		{"ends when existing starts", TimeOfDay{9, 0}, 1.0, "S1", false},
		{"overlaps tail and head", TimeOfDay{9, 30}, 1.0, "S1", true},
		{"starts when existing ends", TimeOfDay{11, 0}, 1.0, "S1", false},
		{"fully inside existing", TimeOfDay{10, 15}, 0.5, "S1", true},
		{"fully covers existing", TimeOfDay{9, 30}, 2.0, "S1", true},
		{"same slot other facility", TimeOfDay{10, 0}, 1.0, "C2", false},
		{"sub-venue does not clash with parent", TimeOfDay{10, 0}, 1.0, "S1_2", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckNoConflict(Window{Date: date, Start: tc.start, DurationHours: tc.duration}, tc.key, existing)
			if tc.conflict && err == nil {
				t.Error("want conflict, got nil")
			}
			if !tc.conflict && err != nil {
				t.Errorf("want no conflict, got %v", err)
			}
		})
	}
}

func TestCheckNoConflict_ReportsSlot(t *testing.T) {
	existing := []Reservation{
		{FacilityKey: "S1", StartTime: at(2025, time.June, 1, 10, 0), DurationHours: 1.5},
	}
	err := CheckNoConflict(Window{Date: day(2025, time.June, 1), Start: TimeOfDay{11, 0}, DurationHours: 1.0}, "S1", existing)
	if err == nil {
		t.Fatal("want conflict")
	}
	if !err.Start.Equal(at(2025, time.June, 1, 10, 0)) || !err.End.Equal(at(2025, time.June, 1, 11, 30)) {
		t.Errorf("conflict slot = %v-%v, want 10:00-11:30", err.Start, err.End)
	}
	if !strings.Contains(err.Error(), "10:00") || !strings.Contains(err.Error(), "11:30") {
		t.Errorf("error message %q should carry the conflicting slot", err.Error())
	}
}

func TestValidDuration(t *testing.T) {
	for _, d := range []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0} {
		if !ValidDuration(d) {
			t.Errorf("ValidDuration(%v) = false, want true", d)
		}
	}
	for _, d := range []float64{0, -1, 0.25, 0.75, 3.5, 4, 24} {
		if ValidDuration(d) {
			t.Errorf("ValidDuration(%v) = true, want false", d)
		}
	}
}

func TestValidate_ConflictScenario(t *testing.T) {
	// Facility hours 0800-1700; an existing 09:00 booking for one hour
	// collides with a 09:30 candidate.
	hours := OperatingHoursFrom("0800", "1700")
	existing := []Reservation{
		{FacilityKey: "S1", StartTime: at(2025, time.June, 1, 9, 0), DurationHours: 1.0},
	}
	w := Window{Date: day(2025, time.June, 1), Start: TimeOfDay{9, 30}, DurationHours: 1.0}
	now := at(2025, time.May, 30, 12, 0)

	res := Validate(w, hours, existing, "S1", now)
	if res.Valid {
		t.Error("want invalid result")
	}
	if res.Conflict == nil {
		t.Error("want conflict error set")
	}
	if res.OperatingHours != nil || res.PastTime != nil {
		t.Errorf("unexpected extra errors: %+v", res)
	}
}

func TestValidate_ClosingTimeScenario(t *testing.T) {
	hours := OperatingHoursFrom("0800", "1700")
	w := Window{Date: day(2025, time.June, 1), Start: TimeOfDay{15, 30}, DurationHours: 2.0}
	now := at(2025, time.May, 30, 12, 0)

	res := Validate(w, hours, nil, "S1", now)
	if res.Valid {
		t.Error("want invalid result")
	}
	if res.OperatingHours == nil {
		t.Fatal("want operating-hours error set")
	}
	if !strings.Contains(res.OperatingHours.Message, "17:00") {
		t.Errorf("error %q should carry the closing time", res.OperatingHours.Message)
	}
}

func TestValidate_PastScenario(t *testing.T) {
	hours := OperatingHoursFrom("0800", "2200")
	w := Window{Date: day(2025, time.June, 1), Start: TimeOfDay{10, 0}, DurationHours: 1.0}
	now := at(2025, time.June, 2, 8, 0)

	res := Validate(w, hours, nil, "S1", now)
	if res.Valid {
		t.Error("want invalid result")
	}
	if res.PastTime == nil {
		t.Error("want past-time error set")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	hours := OperatingHoursFrom("0800", "2200")
	existing := []Reservation{
		{FacilityKey: "S1", StartTime: at(2025, time.June, 1, 9, 0), DurationHours: 1.0},
		{FacilityKey: "S1_2", StartTime: at(2025, time.June, 1, 14, 0), DurationHours: 2.0},
	}
	w := Window{Date: day(2025, time.June, 1), Start: TimeOfDay{9, 30}, DurationHours: 1.5}
	now := at(2025, time.May, 30, 12, 0)

	first := Validate(w, hours, existing, "S1", now)
	second := Validate(w, hours, existing, "S1", now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs gave different results:\n%+v\n%+v", first, second)
	}
}

func TestValidate_AllValid(t *testing.T) {
	hours := OperatingHoursFrom("", "") // defaults
	existing := []Reservation{
		{FacilityKey: "S1", StartTime: at(2025, time.June, 1, 9, 0), DurationHours: 1.0},
	}
	w := Window{Date: day(2025, time.June, 1), Start: TimeOfDay{10, 0}, DurationHours: 1.0}
	now := at(2025, time.May, 30, 12, 0)

	res := Validate(w, hours, existing, "S1", now)
	if !res.Valid {
		t.Errorf("want valid result, got %+v", res)
	}
}
