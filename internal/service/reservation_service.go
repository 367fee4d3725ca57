package service

import (
	"fmt"
	"log"
	"time"

	"campusbook/internal/booking"
	"campusbook/internal/db"
	"campusbook/internal/entities"
	apperrors "campusbook/internal/errors"
	"campusbook/internal/utils"
)

const (
	statusActive   = "active"
	statusCanceled = "canceled"
	statusFinished = "finished"
)

// Store interfaces are satisfied by the repository package; tests plug in
// fakes.
type ReservationStore interface {
	Create(res *db.Reservation) error
	GetByCode(code string) (*db.Reservation, error)
	ListByUser(userID string) ([]db.Reservation, error)
	ListActiveByFacilityKey(facilityKey string) ([]db.Reservation, error)
	List(date, facilityKey, status string) ([]db.Reservation, error)
	UpdateWindow(code, facilityKey string, startTime time.Time, durationHours float64) error
	SetStatus(code, status string) error
	DeleteByID(id int) error
	CountByStatus() (map[string]int, error)
}

type FacilityStore interface {
	GetFacility(key string) (*db.Facility, error)
	GetSubVenue(key string) (*db.SubVenue, error)
	BookingCountsByFacility() ([]entities.FacilityBookedCnt, error)
}

type EquipmentStore interface {
	Get(key string) (*db.Equipment, error)
	AdjustQuantity(key string, delta int) error
}

type UserStore interface {
	GetByID(id string) (*db.User, error)
	GetByDisplayID(displayID string) (*db.User, error)
}

// ReservationNotifier delivers booking confirmations and cancellations.
type ReservationNotifier interface {
	NotifyReservation(user *db.User, res *db.Reservation, facilityName, status string)
}

type ReservationService struct {
	Reservations ReservationStore
	Facilities   FacilityStore
	Equipment    EquipmentStore
	Users        UserStore
	Notifier     ReservationNotifier

	now func() time.Time
}

func NewReservationService(reservations ReservationStore, facilities FacilityStore, equipment EquipmentStore, users UserStore, notifier ReservationNotifier) *ReservationService {
	return &ReservationService{
		Reservations: reservations,
		Facilities:   facilities,
		Equipment:    equipment,
		Users:        users,
		Notifier:     notifier,
		now:          time.Now,
	}
}

// resolveFacility maps a booking key (facility or sub-venue) to the parent
// facility that owns the operating hours and equipment.
func (s *ReservationService) resolveFacility(key string) (*db.Facility, error) {
	ref := booking.ParseFacilityRef(key)
	if ref.IsSubVenue() {
		sv, err := s.Facilities.GetSubVenue(key)
		if err != nil {
			return nil, err
		}
		if sv == nil {
			return nil, apperrors.NewHTTPError(404, fmt.Sprintf("sub-venue %s not found", key))
		}
	}
	facility, err := s.Facilities.GetFacility(ref.Parent)
	if err != nil {
		return nil, err
	}
	if facility == nil {
		return nil, apperrors.NewHTTPError(404, fmt.Sprintf("facility %s not found", ref.Parent))
	}
	return facility, nil
}

func buildWindow(req entities.ReservationRequest) (booking.Window, error) {
	if req.FacilityKey == "" || req.Date == "" || req.Start == "" {
		return booking.Window{}, apperrors.NewHTTPError(400, "facility, date and start time are required")
	}
	if !booking.ValidDuration(req.DurationHours) {
		return booking.Window{}, apperrors.NewHTTPError(400, "duration must be between 0.5 and 3 hours in half-hour steps")
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return booking.Window{}, apperrors.NewHTTPError(400, "date must be YYYY-MM-DD")
	}
	start, err := booking.ParseOperatingTime(req.Start)
	if err != nil {
		return booking.Window{}, apperrors.NewHTTPError(400, "start time must be 4 digits (HHMM)")
	}
	return booking.Window{Date: date, Start: start, DurationHours: req.DurationHours}, nil
}

func toValidationResult(res booking.Result) entities.ValidationResult {
	out := entities.ValidationResult{Valid: res.Valid}
	if res.OperatingHours != nil {
		out.OperatingHoursError = res.OperatingHours.Message
	}
	if res.PastTime != nil {
		out.PastTimeError = res.PastTime.Message
	}
	if res.Conflict != nil {
		out.ConflictError = res.Conflict.Error()
		start, end := res.Conflict.Start, res.Conflict.End
		out.ConflictStart, out.ConflictEnd = &start, &end
	}
	return out
}

func toBookingReservations(rows []db.Reservation) []booking.Reservation {
	out := make([]booking.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, booking.Reservation{
			FacilityKey:   row.FacilityKey,
			StartTime:     row.StartTime,
			DurationHours: row.DurationHours,
		})
	}
	return out
}

// validateWindow runs the full booking check for a candidate request.
// excludeCode skips one reservation, so updates don't conflict with
// themselves.
func (s *ReservationService) validateWindow(req entities.ReservationRequest, excludeCode string) (booking.Window, entities.ValidationResult, error) {
	window, err := buildWindow(req)
	if err != nil {
		return booking.Window{}, entities.ValidationResult{}, err
	}
	facility, err := s.resolveFacility(req.FacilityKey)
	if err != nil {
		return booking.Window{}, entities.ValidationResult{}, err
	}
	hours := booking.OperatingHoursFrom(facility.OpenTime, facility.CloseTime)

	rows, err := s.Reservations.ListActiveByFacilityKey(req.FacilityKey)
	if err != nil {
		return booking.Window{}, entities.ValidationResult{}, fmt.Errorf("error loading existing reservations: %w", err)
	}
	if excludeCode != "" {
		kept := rows[:0]
		for _, row := range rows {
			if row.Code != excludeCode {
				kept = append(kept, row)
			}
		}
		rows = kept
	}

	result := booking.Validate(window, hours, toBookingReservations(rows), req.FacilityKey, s.now())
	return window, toValidationResult(result), nil
}

// CheckAvailability is the probe behind the booking form: it reports the
// full validation outcome without creating anything.
func (s *ReservationService) CheckAvailability(req entities.ReservationRequest) (*entities.ValidationResult, error) {
	_, result, err := s.validateWindow(req, "")
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func firstError(result entities.ValidationResult) string {
	switch {
	case result.OperatingHoursError != "":
		return result.OperatingHoursError
	case result.PastTimeError != "":
		return result.PastTimeError
	case result.ConflictError != "":
		return result.ConflictError
	}
	return "booking is not valid"
}

func (s *ReservationService) CreateReservation(userID string, req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewHTTPError(404, "user not found")
	}
	return s.create(user, req)
}

// CreateReservationFor books on behalf of another user, addressed by display
// ID (the admin flow).
func (s *ReservationService) CreateReservationFor(displayID string, req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	user, err := s.Users.GetByDisplayID(displayID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewHTTPError(404, fmt.Sprintf("user %s not found", displayID))
	}
	return s.create(user, req)
}

func (s *ReservationService) create(user *db.User, req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	window, result, err := s.validateWindow(req, "")
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, apperrors.NewHTTPError(409, firstError(result))
	}

	facility, err := s.resolveFacility(req.FacilityKey)
	if err != nil {
		return nil, err
	}

	equipment, err := s.takeEquipment(facility.Key, req.Equipment)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	reservation := &db.Reservation{
		Code:          fmt.Sprintf("%08X", now.UnixNano()%100000000),
		UserID:        user.ID,
		FacilityKey:   req.FacilityKey,
		StartTime:     window.StartAt(),
		DurationHours: req.DurationHours,
		Equipment:     equipment,
		Status:        statusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Reservations.Create(reservation); err != nil {
		s.restoreEquipment(reservation.Equipment)
		log.Printf("Error creating reservation in repository: %v", err)
		return nil, err
	}

	s.notify(user, reservation, facility.Name, "confirmed")
	resp := s.toResponse(*reservation, user, facility.Name)
	return &resp, nil
}

// takeEquipment verifies every requested item belongs to the facility and
// has stock, then decrements. Already-taken items are put back when a later
// one fails.
func (s *ReservationService) takeEquipment(facilityKey string, selection map[string]int) (string, error) {
	if len(selection) == 0 {
		return utils.NoEquipment, nil
	}
	taken := make(map[string]int)
	for key, qty := range selection {
		if qty <= 0 {
			s.restoreSelection(taken)
			return "", apperrors.NewHTTPError(400, fmt.Sprintf("equipment %s: quantity must be positive", key))
		}
		item, err := s.Equipment.Get(key)
		if err != nil {
			s.restoreSelection(taken)
			return "", err
		}
		if item == nil || item.FacilityKey != facilityKey {
			s.restoreSelection(taken)
			return "", apperrors.NewHTTPError(404, fmt.Sprintf("equipment %s not found for this facility", key))
		}
		if err := s.Equipment.AdjustQuantity(key, -qty); err != nil {
			s.restoreSelection(taken)
			return "", apperrors.NewHTTPError(409, fmt.Sprintf("equipment %s: not enough available", key))
		}
		taken[key] = qty
	}
	return utils.FormatEquipmentSelection(selection), nil
}

func (s *ReservationService) restoreSelection(selection map[string]int) {
	for key, qty := range selection {
		if err := s.Equipment.AdjustQuantity(key, qty); err != nil {
			log.Printf("Could not restore equipment %s x%d: %v", key, qty, err)
		}
	}
}

func (s *ReservationService) restoreEquipment(encoded string) {
	selection, err := utils.ParseEquipmentSelection(encoded)
	if err != nil {
		log.Printf("Could not parse equipment selection %q: %v", encoded, err)
		return
	}
	s.restoreSelection(selection)
}

func (s *ReservationService) GetReservation(code string) (*entities.ReservationResponse, error) {
	reservation, err := s.Reservations.GetByCode(code)
	if err != nil {
		return nil, apperrors.NewHTTPError(404, "reservation not found")
	}
	resp := s.describe(*reservation)
	return &resp, nil
}

func (s *ReservationService) ListForUser(userID string) (*entities.ReservationsList, error) {
	rows, err := s.Reservations.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toList(rows), nil
}

func (s *ReservationService) ListReservations(date, facilityKey, status string) (*entities.ReservationsList, error) {
	rows, err := s.Reservations.List(date, facilityKey, status)
	if err != nil {
		return nil, err
	}
	return s.toList(rows), nil
}

// CancelReservation flips the status and puts borrowed equipment back.
// requesterID is empty for admin calls; otherwise the reservation must
// belong to the requester.
func (s *ReservationService) CancelReservation(code, requesterID string) error {
	reservation, err := s.Reservations.GetByCode(code)
	if err != nil {
		return apperrors.NewHTTPError(404, "reservation not found")
	}
	if requesterID != "" && reservation.UserID != requesterID {
		return apperrors.NewHTTPError(403, "reservation belongs to another user")
	}
	if reservation.Status != statusActive {
		return apperrors.NewHTTPError(409, fmt.Sprintf("reservation is already %s", reservation.Status))
	}
	if err := s.Reservations.SetStatus(code, statusCanceled); err != nil {
		return err
	}
	s.restoreEquipment(reservation.Equipment)

	reservation.Status = statusCanceled
	user, err := s.Users.GetByID(reservation.UserID)
	if err != nil || user == nil {
		log.Printf("Could not load user %s for cancellation notice: %v", reservation.UserID, err)
		return nil
	}
	facilityName := s.facilityName(reservation.FacilityKey)
	s.notify(user, reservation, facilityName, statusCanceled)
	return nil
}

// UpdateReservation moves an active reservation to a new window after
// re-validating it, excluding the reservation itself from the overlap check.
func (s *ReservationService) UpdateReservation(code string, req entities.ReservationRequest) (*entities.ReservationResponse, error) {
	reservation, err := s.Reservations.GetByCode(code)
	if err != nil {
		return nil, apperrors.NewHTTPError(404, "reservation not found")
	}
	if reservation.Status != statusActive {
		return nil, apperrors.NewHTTPError(409, fmt.Sprintf("cannot modify a %s reservation", reservation.Status))
	}

	window, result, err := s.validateWindow(req, code)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, apperrors.NewHTTPError(409, firstError(result))
	}

	if err := s.Reservations.UpdateWindow(code, req.FacilityKey, window.StartAt(), req.DurationHours); err != nil {
		return nil, err
	}
	return s.GetReservation(code)
}

func (s *ReservationService) DeleteReservation(id int) error {
	return s.Reservations.DeleteByID(id)
}

func (s *ReservationService) Stats() (*entities.StatsResponse, error) {
	byStatus, err := s.Reservations.CountByStatus()
	if err != nil {
		return nil, err
	}
	byFacility, err := s.Facilities.BookingCountsByFacility()
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &entities.StatsResponse{Total: total, ByStatus: byStatus, ByFacility: byFacility}, nil
}

func (s *ReservationService) notify(user *db.User, res *db.Reservation, facilityName, status string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotifyReservation(user, res, facilityName, status)
}

func (s *ReservationService) facilityName(key string) string {
	facility, err := s.resolveFacility(key)
	if err != nil {
		return key
	}
	return facility.Name
}

func (s *ReservationService) toResponse(res db.Reservation, user *db.User, facilityName string) entities.ReservationResponse {
	resp := entities.ReservationResponse{
		Code:          res.Code,
		FacilityKey:   res.FacilityKey,
		FacilityName:  facilityName,
		StartTime:     res.StartTime,
		EndTime:       res.StartTime.Add(time.Duration(res.DurationHours * float64(time.Hour))),
		DurationHours: res.DurationHours,
		Status:        res.Status,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
	if res.Equipment != utils.NoEquipment {
		resp.Equipment = res.Equipment
	}
	if user != nil {
		resp.UserDisplayID = user.DisplayID
		resp.UserName = user.Name
	}
	return resp
}

func (s *ReservationService) describe(res db.Reservation) entities.ReservationResponse {
	user, err := s.Users.GetByID(res.UserID)
	if err != nil {
		user = nil
	}
	return s.toResponse(res, user, s.facilityName(res.FacilityKey))
}

func (s *ReservationService) toList(rows []db.Reservation) *entities.ReservationsList {
	list := &entities.ReservationsList{Total: len(rows), Reservations: []entities.ReservationResponse{}}
	for _, row := range rows {
		list.Reservations = append(list.Reservations, s.describe(row))
	}
	return list
}
