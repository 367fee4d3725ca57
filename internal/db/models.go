package db

import "time"

type User struct {
	ID           string
	DisplayID    string
	Name         string
	Email        string
	Phone        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// Facility keys are short codes like "S1" or "C2". Operating times are kept
// as the raw 4-digit strings from the admin form; defaulting happens in the
// booking package.
type Facility struct {
	Key         string
	Name        string
	Description string
	Location    string
	OpenTime    string
	CloseTime   string
	Capacity    int
	CreatedAt   time.Time
}

// SubVenue keys are composite: "<facility>_<n>", e.g. "S1_2".
type SubVenue struct {
	Key         string
	FacilityKey string
	Name        string
}

type Equipment struct {
	Key         string
	FacilityKey string
	Name        string
	Quantity    int
}

type Reservation struct {
	ID            int
	Code          string
	UserID        string
	FacilityKey   string
	StartTime     time.Time
	DurationHours float64
	Equipment     string // "S1E1:2,S1E2:1", or "NONE"
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
