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

func TestFamilyStorage_CreateAndGetFamily(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	family := &models.Family{
		ID:        uuid.New().String(),
		Name:      "The Smiths",
		CreatedBy: uuid.New().String(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateFamily(ctx, family))

	retrieved, err := s.GetFamily(ctx, family.ID)
	require.NoError(t, err)
	assert.Equal(t, family.ID, retrieved.ID)
	assert.Equal(t, "The Smiths", retrieved.Name)
	assert.Equal(t, family.CreatedBy, retrieved.CreatedBy)

	_, err = s.GetFamily(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrFamilyNotFound)
}

func TestFamilyStorage_Members(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	familyID := createTestFamily(t, ctx, s)

	member := &models.Member{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     "kid@example.com",
		Name:      "Kiddo",
		Role:      models.RoleChild,
		InvitedBy: uuid.New().String(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateMember(ctx, member))

	members, err := s.ListMembers(ctx, familyID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, member.ID, members[0].ID)
	assert.Equal(t, 0, members[0].Points)
	assert.False(t, members[0].Joined)

	retrieved, err := s.GetMemberByEmail(ctx, familyID, "kid@example.com")
	require.NoError(t, err)
	assert.Equal(t, member.ID, retrieved.ID)

	_, err = s.GetMemberByEmail(ctx, familyID, "stranger@example.com")
	assert.ErrorIs(t, err, storage.ErrMemberNotFound)
}

func TestFamilyStorage_MarkMemberJoined(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	familyID := createTestFamily(t, ctx, s)

	member := &models.Member{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     "join@example.com",
		Role:      models.RoleParent,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateMember(ctx, member))

	userID := uuid.New().String()
	require.NoError(t, s.MarkMemberJoined(ctx, member.ID, userID))

	retrieved, err := s.GetMemberByEmail(ctx, familyID, "join@example.com")
	require.NoError(t, err)
	assert.True(t, retrieved.Joined)
	assert.Equal(t, userID, retrieved.UserID)

	err = s.MarkMemberJoined(ctx, uuid.New().String(), userID)
	assert.ErrorIs(t, err, storage.ErrMemberNotFound)
}

func TestFamilyStorage_AddPoints(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	familyID := createTestFamily(t, ctx, s)
	userID := uuid.New().String()

	member := &models.Member{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     "points@example.com",
		Role:      models.RoleChild,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateMember(ctx, member))

	// Очки начисляются только присоединившимся членам
	err := s.AddPoints(ctx, familyID, userID, 10)
	assert.ErrorIs(t, err, storage.ErrMemberNotFound)

	require.NoError(t, s.MarkMemberJoined(ctx, member.ID, userID))

	require.NoError(t, s.AddPoints(ctx, familyID, userID, 10))
	require.NoError(t, s.AddPoints(ctx, familyID, userID, 5))

	members, err := s.ListMembers(ctx, familyID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 15, members[0].Points)
}

func TestFamilyStorage_Invites(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	familyID := createTestFamily(t, ctx, s)

	invite := &models.Invite{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     "granny@example.com",
		Role:      models.RoleGrandparent,
		InvitedBy: uuid.New().String(),
		Status:    models.InviteStatusPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateInvite(ctx, invite))

	pending, err := s.GetPendingInvite(ctx, "granny@example.com")
	require.NoError(t, err)
	assert.Equal(t, invite.ID, pending.ID)
	assert.Equal(t, familyID, pending.FamilyID)

	require.NoError(t, s.AcceptInvite(ctx, invite.ID))

	_, err = s.GetPendingInvite(ctx, "granny@example.com")
	assert.ErrorIs(t, err, storage.ErrInviteNotFound)

	err = s.AcceptInvite(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrInviteNotFound)
}

func createTestFamily(t *testing.T, ctx context.Context, s *Storage) string {
	familyID := uuid.New().String()
	family := &models.Family{
		ID:        familyID,
		Name:      "family_" + familyID[:8],
		CreatedBy: uuid.New().String(),
		CreatedAt: time.Now(),
	}

	err := s.CreateFamily(ctx, family)
	require.NoError(t, err)

	return familyID
}
