package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"campusbook/internal/db"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(user *db.User, password string) error
	GetByID(id string) (*db.User, error)
	GetByDisplayID(displayID string) (*db.User, error)
	GetByEmail(email string) (*db.User, error)
	DisplayIDExists(displayID string) (bool, error)
	ListByRole(role string) ([]db.User, error)
	Search(query string) ([]db.User, error)
	Update(id, name, email, phone string) error
	Delete(id string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

const userColumns = `id, display_id, name, email, phone, role, password_hash, created_at`

func (r *userRepository) Create(user *db.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	query := `
		INSERT INTO users (id, display_id, name, email, phone, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.QueryRow(query,
		user.ID, user.DisplayID, user.Name, user.Email, user.Phone, user.Role, user.PasswordHash,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) scanOne(row *sql.Row) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.DisplayID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(id string) (*db.User, error) {
	return r.scanOne(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByDisplayID(displayID string) (*db.User, error) {
	return r.scanOne(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE display_id = $1`, displayID))
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	return r.scanOne(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) DisplayIDExists(displayID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE display_id = $1)`, displayID).Scan(&exists)
	return exists, err
}

func (r *userRepository) queryMany(query string, args ...interface{}) ([]db.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		err := rows.Scan(&u.ID, &u.DisplayID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListByRole(role string) ([]db.User, error) {
	return r.queryMany(`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY display_id`, role)
}

// Search matches display IDs and names case-insensitively.
func (r *userRepository) Search(query string) ([]db.User, error) {
	pattern := "%" + query + "%"
	return r.queryMany(`
		SELECT `+userColumns+` FROM users
		WHERE display_id ILIKE $1 OR name ILIKE $1
		ORDER BY display_id`, pattern)
}

func (r *userRepository) Update(id, name, email, phone string) error {
	result, err := r.db.Exec(`UPDATE users SET name = $2, email = $3, phone = $4 WHERE id = $1`,
		id, name, email, phone)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

func (r *userRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	return err
}
