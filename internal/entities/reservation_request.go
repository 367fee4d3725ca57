package entities

// ReservationRequest is the payload for availability checks and bookings.
// Date is "2006-01-02"; Start uses the same 4-digit format as facility
// operating hours ("0930").
type ReservationRequest struct {
	FacilityKey   string         `json:"facility_key"`
	Date          string         `json:"date"`
	Start         string         `json:"start"`
	DurationHours float64        `json:"duration_hours"`
	Equipment     map[string]int `json:"equipment,omitempty"`
}

// AdminReservationRequest lets staff book on behalf of a user.
type AdminReservationRequest struct {
	UserDisplayID string `json:"user_display_id"`
	ReservationRequest
}
