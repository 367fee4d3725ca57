package api

import (
	"encoding/json"
	"net/http"

	"campusbook/internal/db"
	"campusbook/internal/service"

	"github.com/gorilla/mux"
)

type FacilityHandler struct {
	Service *service.FacilityService
}

func NewFacilityHandler(svc *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{Service: svc}
}

func (h *FacilityHandler) ListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.Service.ListFacilities()
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, facilities)
}

func (h *FacilityHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	facility, err := h.Service.GetFacility(key)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, facility)
}

func (h *FacilityHandler) ListSubVenues(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	venues, err := h.Service.ListSubVenues(key)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

// ListEquipment is the user-facing inventory view: only items in stock.
func (h *FacilityHandler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	items, err := h.Service.ListEquipment(key, true)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *FacilityHandler) AdminListEquipment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	items, err := h.Service.ListEquipment(key, false)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *FacilityHandler) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var req FacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	facility := &db.Facility{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		Capacity:    req.Capacity,
	}
	if err := h.Service.CreateFacility(facility); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, facility)
}

func (h *FacilityHandler) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req FacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	facility := &db.Facility{
		Key:         key,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		Capacity:    req.Capacity,
	}
	if err := h.Service.UpdateFacility(facility); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Facility updated"})
}

func (h *FacilityHandler) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := h.Service.DeleteFacility(key); err != nil {
		http.Error(w, "Could not delete facility", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Facility deleted"})
}

func (h *FacilityHandler) CreateSubVenue(w http.ResponseWriter, r *http.Request) {
	facilityKey := mux.Vars(r)["key"]
	var req SubVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	sv := &db.SubVenue{Key: req.Key, FacilityKey: facilityKey, Name: req.Name}
	if err := h.Service.CreateSubVenue(sv); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sv)
}

func (h *FacilityHandler) DeleteSubVenue(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["subKey"]
	if err := h.Service.DeleteSubVenue(key); err != nil {
		http.Error(w, "Could not delete sub-venue", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sub-venue deleted"})
}

func (h *FacilityHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	facilityKey := mux.Vars(r)["key"]
	var req EquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	item := &db.Equipment{Key: req.Key, FacilityKey: facilityKey, Name: req.Name, Quantity: req.Quantity}
	if err := h.Service.CreateEquipment(item); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *FacilityHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["equipmentKey"]
	var req EquipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	item := &db.Equipment{Key: key, Name: req.Name, Quantity: req.Quantity}
	if err := h.Service.UpdateEquipment(item); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Equipment updated"})
}

func (h *FacilityHandler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["equipmentKey"]
	if err := h.Service.DeleteEquipment(key); err != nil {
		http.Error(w, "Could not delete equipment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Equipment deleted"})
}
