package api

// Auth
type LoginRequest struct {
	// ID is a display ID ("S123456") or an email address.
	ID       string `json:"id"`
	Password string `json:"password"`
}
type LoginResponse struct {
	Token     string `json:"token"`
	DisplayID string `json:"display_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// Facilities
type FacilityRequest struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	Capacity    int    `json:"capacity"`
}

type SubVenueRequest struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type EquipmentRequest struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Users
type UserResponse struct {
	DisplayID string `json:"display_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
