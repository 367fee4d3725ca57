package entities

// StatsResponse backs the admin booking-statistics view.
type StatsResponse struct {
	Total      int                 `json:"total"`
	ByStatus   map[string]int      `json:"by_status"`
	ByFacility []FacilityBookedCnt `json:"by_facility"`
}

type FacilityBookedCnt struct {
	FacilityKey string `json:"facility_key"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
}
