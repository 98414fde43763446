package storage

import (
	"context"

	"github.com/iudanet/familyhub/internal/models"
)

// UserStorage defines interface for user profile persistence
type UserStorage interface {
	// CreateUser creates a new user profile
	// Returns ErrUserAlreadyExists if email is taken
	CreateUser(ctx context.Context, user *models.UserProfile) error

	// GetUserByEmail retrieves user by email
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.UserProfile, error)

	// UpdateProfile updates display name and role
	// Returns ErrUserNotFound if user doesn't exist
	UpdateProfile(ctx context.Context, user *models.UserProfile) error

	// SetFamily assigns user to a family with a role
	// Returns ErrUserNotFound if user doesn't exist
	SetFamily(ctx context.Context, userID, familyID, role string) error
}
