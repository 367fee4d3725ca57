package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campusbook/internal/db"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

const reservationColumns = `id, code, user_id, facility_key, start_time, duration_hours, equipment, status, created_at, updated_at`

func (r *ReservationRepository) Create(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(code, user_id, facility_key, start_time, duration_hours, equipment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		res.Code,
		res.UserID,
		res.FacilityKey,
		res.StartTime,
		res.DurationHours,
		res.Equipment,
		res.Status,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func scanReservation(scan func(dest ...interface{}) error) (*db.Reservation, error) {
	var res db.Reservation
	err := scan(
		&res.ID, &res.Code, &res.UserID, &res.FacilityKey, &res.StartTime,
		&res.DurationHours, &res.Equipment, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) GetByCode(code string) (*db.Reservation, error) {
	row := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE code = $1`, code)
	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) queryMany(query string, args ...interface{}) ([]db.Reservation, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) ListByUser(userID string) ([]db.Reservation, error) {
	return r.queryMany(`
		SELECT `+reservationColumns+` FROM reservations
		WHERE user_id = $1 ORDER BY start_time DESC`, userID)
}

// ListActiveByFacilityKey feeds the overlap validator: every active booking
// under exactly this key. Parent and sub-venue keys are distinct pools.
func (r *ReservationRepository) ListActiveByFacilityKey(facilityKey string) ([]db.Reservation, error) {
	return r.queryMany(`
		SELECT `+reservationColumns+` FROM reservations
		WHERE facility_key = $1 AND status = 'active'
		ORDER BY start_time`, facilityKey)
}

// List applies the admin view's optional filters.
func (r *ReservationRepository) List(date, facilityKey, status string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND DATE(start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if facilityKey != "" {
		query += " AND facility_key = $" + strconv.Itoa(idx)
		args = append(args, facilityKey)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY start_time DESC"

	return r.queryMany(query, args...)
}

func (r *ReservationRepository) UpdateWindow(code, facilityKey string, startTime time.Time, durationHours float64) error {
	result, err := r.DB.Exec(`
		UPDATE reservations
		SET facility_key = $2, start_time = $3, duration_hours = $4, updated_at = NOW()
		WHERE code = $1`,
		code, facilityKey, startTime, durationHours)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("reservation %s not found", code)
	}
	return nil
}

func (r *ReservationRepository) SetStatus(code, status string) error {
	var got string
	err := r.DB.QueryRow(`
		UPDATE reservations SET status = $2, updated_at = NOW()
		WHERE code = $1 RETURNING status`, code, status).Scan(&got)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("reservation %s not found", code)
		}
		return err
	}
	return nil
}

func (r *ReservationRepository) DeleteByID(id int) error {
	_, err := r.DB.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	return err
}

func (r *ReservationRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM reservations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
