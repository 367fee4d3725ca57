package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"campusbook/internal/db"
	"campusbook/internal/entities"
	"campusbook/internal/repository"
	"campusbook/internal/service"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Reservations *service.ReservationService
	Auth         service.AuthService
	Users        repository.UserRepository
}

func NewAdminHandler(reservations *service.ReservationService, authSvc service.AuthService, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{Reservations: reservations, Auth: authSvc, Users: users}
}

// ListReservations filters by date (YYYY-MM-DD), facility key and status,
// all optional query parameters.
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Reservations.ListReservations(q.Get("date"), q.Get("facility"), q.Get("status"))
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateReservation books on behalf of a user addressed by display ID.
func (h *AdminHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.AdminReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserDisplayID == "" {
		http.Error(w, "user_display_id is required", http.StatusBadRequest)
		return
	}
	resp, err := h.Reservations.CreateReservationFor(req.UserDisplayID, req.ReservationRequest)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	resp, err := h.Reservations.UpdateReservation(code, req)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}
	if err := h.Reservations.DeleteReservation(id); err != nil {
		http.Error(w, "Could not delete reservation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted"})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reservations.Stats()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateUser registers an account with any role, including staff and admin.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user, err := h.Auth.SignUp(req)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		role = service.RoleStudent
	}
	users, err := h.Users.ListByRole(role)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

func (h *AdminHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}
	users, err := h.Users.Search(query)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	displayID := mux.Vars(r)["displayID"]
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user, err := h.Users.GetByDisplayID(displayID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err := h.Users.Update(user.ID, req.Name, req.Email, req.Phone); err != nil {
		http.Error(w, "Could not update user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User updated"})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	displayID := mux.Vars(r)["displayID"]
	user, err := h.Users.GetByDisplayID(displayID)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err := h.Users.Delete(user.ID); err != nil {
		http.Error(w, "Could not delete user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func toUserResponse(u db.User) UserResponse {
	return UserResponse{
		DisplayID: u.DisplayID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}

func toUserResponses(users []db.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
