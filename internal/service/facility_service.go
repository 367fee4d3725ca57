package service

import (
	"fmt"
	"strings"

	"campusbook/internal/booking"
	"campusbook/internal/db"
	apperrors "campusbook/internal/errors"
	"campusbook/internal/repository"
)

type FacilityService struct {
	Facilities *repository.FacilityRepository
	Equipment  *repository.EquipmentRepository
}

func NewFacilityService(facilities *repository.FacilityRepository, equipment *repository.EquipmentRepository) *FacilityService {
	return &FacilityService{Facilities: facilities, Equipment: equipment}
}

func (s *FacilityService) ListFacilities() ([]db.Facility, error) {
	return s.Facilities.ListFacilities()
}

func (s *FacilityService) GetFacility(key string) (*db.Facility, error) {
	facility, err := s.Facilities.GetFacility(key)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, apperrors.NewHTTPError(404, fmt.Sprintf("facility %s not found", key))
	}
	return facility, nil
}

// CreateFacility validates the key and any configured operating hours before
// storing. Hours may be left empty; the booking layer falls back to the
// defaults.
func (s *FacilityService) CreateFacility(f *db.Facility) error {
	if err := validateFacility(f); err != nil {
		return err
	}
	if booking.ParseFacilityRef(f.Key).IsSubVenue() {
		return apperrors.NewHTTPError(400, "facility keys must not contain '_' (reserved for sub-venues)")
	}
	return s.Facilities.CreateFacility(f)
}

func (s *FacilityService) UpdateFacility(f *db.Facility) error {
	if err := validateFacility(f); err != nil {
		return err
	}
	return s.Facilities.UpdateFacility(f)
}

func validateFacility(f *db.Facility) error {
	if f.Key == "" || f.Name == "" {
		return apperrors.NewHTTPError(400, "facility key and name are required")
	}
	if f.OpenTime != "" {
		if _, err := booking.ParseOperatingTime(f.OpenTime); err != nil {
			return apperrors.NewHTTPError(400, "open_time must be 4 digits (HHMM)")
		}
	}
	if f.CloseTime != "" {
		if _, err := booking.ParseOperatingTime(f.CloseTime); err != nil {
			return apperrors.NewHTTPError(400, "close_time must be 4 digits (HHMM)")
		}
	}
	if f.OpenTime != "" && f.CloseTime != "" {
		open, _ := booking.ParseOperatingTime(f.OpenTime)
		close, _ := booking.ParseOperatingTime(f.CloseTime)
		if open.Minutes() > close.Minutes() {
			return apperrors.NewHTTPError(400, "open_time must not be after close_time")
		}
	}
	return nil
}

func (s *FacilityService) DeleteFacility(key string) error {
	return s.Facilities.DeleteFacility(key)
}

func (s *FacilityService) ListSubVenues(facilityKey string) ([]db.SubVenue, error) {
	return s.Facilities.ListSubVenues(facilityKey)
}

// CreateSubVenue enforces the composite-key convention: the sub-venue key
// must extend its parent's key.
func (s *FacilityService) CreateSubVenue(sv *db.SubVenue) error {
	if sv.Key == "" || sv.Name == "" {
		return apperrors.NewHTTPError(400, "sub-venue key and name are required")
	}
	ref := booking.ParseFacilityRef(sv.Key)
	if !ref.IsSubVenue() || ref.Parent != sv.FacilityKey {
		return apperrors.NewHTTPError(400, fmt.Sprintf("sub-venue key must look like %s_<n>", sv.FacilityKey))
	}
	parent, err := s.Facilities.GetFacility(sv.FacilityKey)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperrors.NewHTTPError(404, fmt.Sprintf("facility %s not found", sv.FacilityKey))
	}
	return s.Facilities.CreateSubVenue(sv)
}

func (s *FacilityService) DeleteSubVenue(key string) error {
	return s.Facilities.DeleteSubVenue(key)
}

// ListEquipment returns a facility's inventory. Users only see items in
// stock; admins see everything.
func (s *FacilityService) ListEquipment(facilityKey string, availableOnly bool) ([]db.Equipment, error) {
	return s.Equipment.ListByFacility(facilityKey, availableOnly)
}

func (s *FacilityService) CreateEquipment(e *db.Equipment) error {
	if e.Key == "" || e.Name == "" || e.FacilityKey == "" {
		return apperrors.NewHTTPError(400, "equipment key, facility and name are required")
	}
	if !strings.HasPrefix(e.Key, e.FacilityKey+"E") {
		return apperrors.NewHTTPError(400, fmt.Sprintf("equipment key must look like %sE<n>", e.FacilityKey))
	}
	if e.Quantity < 0 {
		return apperrors.NewHTTPError(400, "quantity must not be negative")
	}
	parent, err := s.Facilities.GetFacility(e.FacilityKey)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperrors.NewHTTPError(404, fmt.Sprintf("facility %s not found", e.FacilityKey))
	}
	return s.Equipment.Create(e)
}

func (s *FacilityService) UpdateEquipment(e *db.Equipment) error {
	if e.Quantity < 0 {
		return apperrors.NewHTTPError(400, "quantity must not be negative")
	}
	return s.Equipment.Update(e)
}

func (s *FacilityService) DeleteEquipment(key string) error {
	return s.Equipment.Delete(key)
}
