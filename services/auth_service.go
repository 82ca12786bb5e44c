package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ottawa-ehospital/2025-fall-calorieTrack-EHR-integrated-nutritional-monitoring/models"
)

// ErrInvalidCredentials means no users row matched the email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService verifies credentials against the remote users table.
type AuthService struct {
	tables *TableService
}

func NewAuthService(tables *TableService) *AuthService {
	return &AuthService{tables: tables}
}

type userRow struct {
	UserID       int    `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Authenticate scans the users table for a row whose email matches
// case-insensitively and whose password_hash matches exactly. The table is
// fetched whole: the backend's filter is not trusted, and credential
// matching is the filter anyway.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var rows []userRow
	if err := s.tables.FetchAll(ctx, "users", &rows); err != nil {
		return models.User{}, err
	}

	for _, row := range rows {
		if strings.EqualFold(row.Email, email) && row.PasswordHash == password {
			username := row.Username
			if username == "" {
				username = "user"
			}
			return models.User{
				UserID:   row.UserID,
				Email:    row.Email,
				Username: username,
			}, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}
