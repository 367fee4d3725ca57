package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"campusbook/internal/db"
)

type EquipmentRepository struct {
	DB *sql.DB
}

func NewEquipmentRepository(database *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{DB: database}
}

func (r *EquipmentRepository) Create(e *db.Equipment) error {
	_, err := r.DB.Exec(`INSERT INTO equipment (key, facility_key, name, quantity) VALUES ($1, $2, $3, $4)`,
		e.Key, e.FacilityKey, e.Name, e.Quantity)
	return err
}

func (r *EquipmentRepository) Get(key string) (*db.Equipment, error) {
	var e db.Equipment
	err := r.DB.QueryRow(`SELECT key, facility_key, name, quantity FROM equipment WHERE key = $1`, key).Scan(
		&e.Key, &e.FacilityKey, &e.Name, &e.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListByFacility returns a facility's equipment; when availableOnly is set,
// items with zero stock are skipped (the user-facing view).
func (r *EquipmentRepository) ListByFacility(facilityKey string, availableOnly bool) ([]db.Equipment, error) {
	query := `SELECT key, facility_key, name, quantity FROM equipment WHERE facility_key = $1`
	if availableOnly {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY key`

	rows, err := r.DB.Query(query, facilityKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []db.Equipment
	for rows.Next() {
		var e db.Equipment
		if err := rows.Scan(&e.Key, &e.FacilityKey, &e.Name, &e.Quantity); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) Update(e *db.Equipment) error {
	result, err := r.DB.Exec(`UPDATE equipment SET name = $2, quantity = $3 WHERE key = $1`,
		e.Key, e.Name, e.Quantity)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("equipment %s not found", e.Key)
	}
	return nil
}

func (r *EquipmentRepository) Delete(key string) error {
	_, err := r.DB.Exec(`DELETE FROM equipment WHERE key = $1`, key)
	return err
}

// AdjustQuantity adds delta to an item's stock. The quantity check runs in
// the UPDATE itself so concurrent bookings cannot drive stock negative.
func (r *EquipmentRepository) AdjustQuantity(key string, delta int) error {
	result, err := r.DB.Exec(`
		UPDATE equipment SET quantity = quantity + $2
		WHERE key = $1 AND quantity + $2 >= 0`, key, delta)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("equipment %s: not found or insufficient stock", key)
	}
	return nil
}
