package service

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"campusbook/internal/db"
	"campusbook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type SignUpRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	DisplayID string `json:"display_id"`
}

type AuthService interface {
	SignUp(req SignUpRequest) (*db.User, error)
	Login(identifier, password string) (string, *db.User, error)
}

type authService struct {
	repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) AuthService {
	return &authService{repo: repo}
}

// FormatDisplayID normalizes or generates the public user ID. Students keep
// their own number, uppercased and prefixed with "S" when missing; staff and
// admin IDs are generated from a UUID when not supplied.
func FormatDisplayID(role, displayID string) string {
	displayID = strings.TrimSpace(displayID)
	switch role {
	case RoleStudent:
		upper := strings.ToUpper(displayID)
		if strings.HasPrefix(upper, "S") {
			return upper
		}
		return "S" + upper
	case RoleStaff:
		if displayID != "" {
			return displayID
		}
		return "STF-" + idSuffix()
	case RoleAdmin:
		if displayID != "" {
			return displayID
		}
		return "ADM-" + idSuffix()
	}
	return displayID
}

func idSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func (s *authService) SignUp(req SignUpRequest) (*db.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email and password are required")
	}
	role := req.Role
	if role == "" {
		role = RoleStudent
	}
	if role != RoleStudent && role != RoleStaff && role != RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if role == RoleStudent && req.DisplayID == "" {
		return nil, errors.New("student ID is required")
	}

	displayID := FormatDisplayID(role, req.DisplayID)
	exists, err := s.repo.DisplayIDExists(displayID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("user ID %s is already taken", displayID)
	}

	user := &db.User{
		ID:        uuid.NewString(),
		DisplayID: displayID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      role,
	}
	if err := s.repo.Create(user, req.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// Login accepts either a display ID ("S123456") or an email address.
func (s *authService) Login(identifier, password string) (string, *db.User, error) {
	user, err := s.repo.GetByDisplayID(strings.ToUpper(strings.TrimSpace(identifier)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user, err = s.repo.GetByEmail(identifier)
		if err != nil {
			return "", nil, err
		}
	}
	if user == nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func signToken(user *db.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"display_id": user.DisplayID,
		"role":       user.Role,
		"exp":        time.Now().Add(time.Hour * 1).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
