package entities

import "time"

type ReservationResponse struct {
	Code          string    `json:"code"`
	UserDisplayID string    `json:"user_display_id"`
	UserName      string    `json:"user_name"`
	FacilityKey   string    `json:"facility_key"`
	FacilityName  string    `json:"facility_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	Equipment     string    `json:"equipment,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
