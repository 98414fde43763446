package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	tests := []struct {
		wantError error
		user      *models.UserProfile
		name      string
	}{
		{
			name: "create new user successfully",
			user: &models.UserProfile{
				ID:          uuid.New().String(),
				Email:       "alice@example.com",
				DisplayName: "Alice",
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			},
			wantError: nil,
		},
		{
			name: "create user with family and role",
			user: &models.UserProfile{
				ID:          uuid.New().String(),
				Email:       "bob@example.com",
				DisplayName: "Bob",
				FamilyID:    uuid.New().String(),
				Role:        models.RoleParent,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			},
			wantError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.CreateUser(ctx, tt.user)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)

				// Verify user was created
				retrieved, err := s.GetUserByID(ctx, tt.user.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.user.ID, retrieved.ID)
				assert.Equal(t, tt.user.Email, retrieved.Email)
				assert.Equal(t, tt.user.DisplayName, retrieved.DisplayName)
				assert.Equal(t, tt.user.FamilyID, retrieved.FamilyID)
				assert.Equal(t, tt.user.Role, retrieved.Role)
			}
		})
	}
}

func TestUserStorage_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       "duplicate@example.com",
		DisplayName: "First",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       "duplicate@example.com",
		DisplayName: "Second",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       "lookup@example.com",
		DisplayName: "Lookup",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       "update@example.com",
		DisplayName: "Before",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	user.DisplayName = "After"
	user.Role = models.RoleGrandparent
	user.UpdatedAt = time.Now()
	require.NoError(t, s.UpdateProfile(ctx, user))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", retrieved.DisplayName)
	assert.Equal(t, models.RoleGrandparent, retrieved.Role)

	missing := &models.UserProfile{ID: uuid.New().String(), DisplayName: "X", UpdatedAt: time.Now()}
	err = s.UpdateProfile(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_SetFamily(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       "join@example.com",
		DisplayName: "Joiner",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	familyID := uuid.New().String()
	require.NoError(t, s.SetFamily(ctx, user.ID, familyID, models.RoleChild))

	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, familyID, retrieved.FamilyID)
	assert.Equal(t, models.RoleChild, retrieved.Role)

	err = s.SetFamily(ctx, uuid.New().String(), familyID, models.RoleChild)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}
