package entities

type ReservationEmailData struct {
	UserName           string
	ReservationCode    string
	FacilityName       string
	StartTimeFormatted string
	EndTimeFormatted   string
	EquipmentSummary   string
	Status             string
	CurrentYear        int
}
