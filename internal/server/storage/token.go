package storage

import (
	"context"

	"github.com/iudanet/familyhub/internal/models"
)

// TokenStorage defines interface for login codes and refresh tokens
type TokenStorage interface {
	// SaveLoginCode stores a new magic-link login code.
	// Previous unused codes for the same email are invalidated.
	SaveLoginCode(ctx context.Context, code *models.LoginCode) error

	// GetActiveLoginCode retrieves the newest unused, unexpired code for email
	// Returns ErrCodeNotFound if none exists
	GetActiveLoginCode(ctx context.Context, email string) (*models.LoginCode, error)

	// MarkLoginCodeUsed marks the code as consumed
	// Returns ErrCodeNotFound if code doesn't exist
	MarkLoginCodeUsed(ctx context.Context, codeID string) error

	// SaveRefreshToken stores a new refresh token
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves refresh token by ID
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, tokenID string) (*models.RefreshToken, error)

	// GetUserTokens retrieves all refresh tokens for a user
	// Returns empty slice if no tokens found
	GetUserTokens(ctx context.Context, userID string) ([]*models.RefreshToken, error)

	// DeleteRefreshToken deletes refresh token by ID
	// Returns ErrTokenNotFound if token doesn't exist
	DeleteRefreshToken(ctx context.Context, tokenID string) error

	// DeleteUserTokens deletes all refresh tokens of a user
	// Returns number of deleted tokens
	DeleteUserTokens(ctx context.Context, userID string) (int, error)

	// DeleteExpired removes all expired tokens and login codes
	// Returns number of deleted rows
	DeleteExpired(ctx context.Context) (int, error)
}
