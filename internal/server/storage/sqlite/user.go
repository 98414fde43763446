package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

// CreateUser creates a new user profile
// Returns ErrUserAlreadyExists if email is taken
func (s *Storage) CreateUser(ctx context.Context, user *models.UserProfile) error {
	query := `
		INSERT INTO users (id, email, display_name, family_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.FamilyID,
		user.Role,
		user.CreatedAt.Unix(),
		user.UpdatedAt.Unix(),
	)

	if err != nil {
		// UNIQUE constraint на email
		if strings.Contains(err.Error(), "UNIQUE") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves user by email
// Returns ErrUserNotFound if user doesn't exist
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `
		SELECT id, email, display_name, family_id, role, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// GetUserByID retrieves user by ID
// Returns ErrUserNotFound if user doesn't exist
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT id, email, display_name, family_id, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// UpdateProfile updates display name and role
// Returns ErrUserNotFound if user doesn't exist
func (s *Storage) UpdateProfile(ctx context.Context, user *models.UserProfile) error {
	query := `
		UPDATE users
		SET display_name = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Role,
		time.Now().Unix(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return requireRowAffected(result, storage.ErrUserNotFound)
}

// SetFamily assigns user to a family with a role
// Returns ErrUserNotFound if user doesn't exist
func (s *Storage) SetFamily(ctx context.Context, userID, familyID, role string) error {
	query := `
		UPDATE users
		SET family_id = ?, role = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, familyID, role, time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("failed to set family: %w", err)
	}

	return requireRowAffected(result, storage.ErrUserNotFound)
}

// scanUser сканирует одну строку users
func (s *Storage) scanUser(row *sql.Row) (*models.UserProfile, error) {
	user := &models.UserProfile{}
	var createdAt, updatedAt int64

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.FamilyID,
		&user.Role,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.CreatedAt = unixToTime(createdAt)
	user.UpdatedAt = unixToTime(updatedAt)

	return user, nil
}

// requireRowAffected возвращает notFound, если запрос не затронул ни одной строки
func requireRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
