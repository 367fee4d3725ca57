package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"campusbook/internal/db"
	"campusbook/internal/entities"
)

type FacilityRepository struct {
	DB *sql.DB
}

func NewFacilityRepository(database *sql.DB) *FacilityRepository {
	return &FacilityRepository{DB: database}
}

const facilityColumns = `key, name, description, location, open_time, close_time, capacity, created_at`

func (r *FacilityRepository) CreateFacility(f *db.Facility) error {
	query := `
		INSERT INTO facilities (key, name, description, location, open_time, close_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.DB.QueryRow(query,
		f.Key, f.Name, f.Description, f.Location, f.OpenTime, f.CloseTime, f.Capacity,
	).Scan(&f.CreatedAt)
}

func (r *FacilityRepository) GetFacility(key string) (*db.Facility, error) {
	var f db.Facility
	err := r.DB.QueryRow(`SELECT `+facilityColumns+` FROM facilities WHERE key = $1`, key).Scan(
		&f.Key, &f.Name, &f.Description, &f.Location, &f.OpenTime, &f.CloseTime, &f.Capacity, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying facility %s: %w", key, err)
	}
	return &f, nil
}

func (r *FacilityRepository) ListFacilities() ([]db.Facility, error) {
	rows, err := r.DB.Query(`SELECT ` + facilityColumns + ` FROM facilities ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facilities []db.Facility
	for rows.Next() {
		var f db.Facility
		err := rows.Scan(&f.Key, &f.Name, &f.Description, &f.Location, &f.OpenTime, &f.CloseTime, &f.Capacity, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

func (r *FacilityRepository) UpdateFacility(f *db.Facility) error {
	result, err := r.DB.Exec(`
		UPDATE facilities
		SET name = $2, description = $3, location = $4, open_time = $5, close_time = $6, capacity = $7
		WHERE key = $1`,
		f.Key, f.Name, f.Description, f.Location, f.OpenTime, f.CloseTime, f.Capacity)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("facility %s not found", f.Key)
	}
	return nil
}

func (r *FacilityRepository) DeleteFacility(key string) error {
	_, err := r.DB.Exec(`DELETE FROM facilities WHERE key = $1`, key)
	return err
}

func (r *FacilityRepository) CreateSubVenue(sv *db.SubVenue) error {
	_, err := r.DB.Exec(`INSERT INTO sub_venues (key, facility_key, name) VALUES ($1, $2, $3)`,
		sv.Key, sv.FacilityKey, sv.Name)
	return err
}

func (r *FacilityRepository) GetSubVenue(key string) (*db.SubVenue, error) {
	var sv db.SubVenue
	err := r.DB.QueryRow(`SELECT key, facility_key, name FROM sub_venues WHERE key = $1`, key).Scan(
		&sv.Key, &sv.FacilityKey, &sv.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sv, nil
}

func (r *FacilityRepository) ListSubVenues(facilityKey string) ([]db.SubVenue, error) {
	rows, err := r.DB.Query(`SELECT key, facility_key, name FROM sub_venues WHERE facility_key = $1 ORDER BY key`, facilityKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []db.SubVenue
	for rows.Next() {
		var sv db.SubVenue
		if err := rows.Scan(&sv.Key, &sv.FacilityKey, &sv.Name); err != nil {
			return nil, err
		}
		venues = append(venues, sv)
	}
	return venues, rows.Err()
}

func (r *FacilityRepository) DeleteSubVenue(key string) error {
	_, err := r.DB.Exec(`DELETE FROM sub_venues WHERE key = $1`, key)
	return err
}

// BookingCountsByFacility feeds the admin statistics view.
func (r *FacilityRepository) BookingCountsByFacility() ([]entities.FacilityBookedCnt, error) {
	rows, err := r.DB.Query(`
		SELECT f.key, f.name, COUNT(r.id)
		FROM facilities f
		LEFT JOIN reservations r
			ON r.facility_key = f.key OR r.facility_key LIKE f.key || '\_%'
		GROUP BY f.key, f.name
		ORDER BY f.key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []entities.FacilityBookedCnt
	for rows.Next() {
		var c entities.FacilityBookedCnt
		if err := rows.Scan(&c.FacilityKey, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
