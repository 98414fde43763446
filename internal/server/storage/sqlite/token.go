package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

// SaveLoginCode stores a new magic-link login code.
// Previous unused codes for the same email are invalidated.
func (s *Storage) SaveLoginCode(ctx context.Context, code *models.LoginCode) error {
	// Инвалидируем предыдущие коды: одновременно активен только один
	invalidate := `UPDATE login_codes SET used = 1 WHERE email = ? AND used = 0`
	if _, err := s.db.ExecContext(ctx, invalidate, code.Email); err != nil {
		return fmt.Errorf("failed to invalidate old codes: %w", err)
	}

	query := `
		INSERT INTO login_codes (id, email, code_hash, used, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		code.ID,
		code.Email,
		code.CodeHash,
		boolToInt(code.Used),
		code.ExpiresAt.Unix(),
		code.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert login code: %w", err)
	}

	return nil
}

// GetActiveLoginCode retrieves the newest unused, unexpired code for email
// Returns ErrCodeNotFound if none exists
func (s *Storage) GetActiveLoginCode(ctx context.Context, email string) (*models.LoginCode, error) {
	query := `
		SELECT id, email, code_hash, used, expires_at, created_at
		FROM login_codes
		WHERE email = ? AND used = 0 AND expires_at > ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	code := &models.LoginCode{}
	var used int
	var expiresAt, createdAt int64

	err := s.db.QueryRowContext(ctx, query, email, time.Now().Unix()).Scan(
		&code.ID,
		&code.Email,
		&code.CodeHash,
		&used,
		&expiresAt,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get login code: %w", err)
	}

	code.Used = intToBool(used)
	code.ExpiresAt = unixToTime(expiresAt)
	code.CreatedAt = unixToTime(createdAt)

	return code, nil
}

// MarkLoginCodeUsed marks the code as consumed
// Returns ErrCodeNotFound if code doesn't exist
func (s *Storage) MarkLoginCodeUsed(ctx context.Context, codeID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE login_codes SET used = 1 WHERE id = ?`, codeID)
	if err != nil {
		return fmt.Errorf("failed to mark login code used: %w", err)
	}

	return requireRowAffected(result, storage.ErrCodeNotFound)
}

// SaveRefreshToken stores a new refresh token
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt.Unix(),
		token.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves refresh token by ID
// Returns ErrTokenNotFound if token doesn't exist
func (s *Storage) GetRefreshToken(ctx context.Context, tokenID string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE id = ?
	`

	token := &models.RefreshToken{}
	var expiresAt, createdAt int64

	err := s.db.QueryRowContext(ctx, query, tokenID).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	token.ExpiresAt = unixToTime(expiresAt)
	token.CreatedAt = unixToTime(createdAt)

	return token, nil
}

// GetUserTokens retrieves all refresh tokens for a user
// Returns empty slice if no tokens found
func (s *Storage) GetUserTokens(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh tokens: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := make([]*models.RefreshToken, 0)
	for rows.Next() {
		token := &models.RefreshToken{}
		var expiresAt, createdAt int64

		if err := rows.Scan(&token.ID, &token.UserID, &token.TokenHash, &expiresAt, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan refresh token: %w", err)
		}

		token.ExpiresAt = unixToTime(expiresAt)
		token.CreatedAt = unixToTime(createdAt)
		tokens = append(tokens, token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tokens, nil
}

// DeleteRefreshToken deletes refresh token by ID
// Returns ErrTokenNotFound if token doesn't exist
func (s *Storage) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = ?`, tokenID)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return requireRowAffected(result, storage.ErrTokenNotFound)
}

// DeleteUserTokens deletes all refresh tokens of a user
// Returns number of deleted tokens
func (s *Storage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user tokens: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(affected), nil
}

// DeleteExpired removes all expired tokens and login codes
// Returns number of deleted rows
func (s *Storage) DeleteExpired(ctx context.Context) (int, error) {
	now := time.Now().Unix()
	deleted := 0

	for _, query := range []string{
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`,
		`DELETE FROM login_codes WHERE expires_at <= ?`,
	} {
		result, err := s.db.ExecContext(ctx, query, now)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete expired rows: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return deleted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		deleted += int(rows)
	}

	return deleted, nil
}
