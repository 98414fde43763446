package storage

import (
	"context"

	"github.com/iudanet/familyhub/internal/models"
)

// FamilyStorage defines interface for families, members and invites
type FamilyStorage interface {
	// CreateFamily creates a new family
	CreateFamily(ctx context.Context, family *models.Family) error

	// GetFamily retrieves family by ID
	// Returns ErrFamilyNotFound if family doesn't exist
	GetFamily(ctx context.Context, familyID string) (*models.Family, error)

	// CreateMember adds a member record to a family
	CreateMember(ctx context.Context, member *models.Member) error

	// ListMembers retrieves all member records of a family
	// Returns empty slice if none found
	ListMembers(ctx context.Context, familyID string) ([]*models.Member, error)

	// GetMemberByEmail retrieves a member record by family and email
	// Returns ErrMemberNotFound if record doesn't exist
	GetMemberByEmail(ctx context.Context, familyID, email string) (*models.Member, error)

	// MarkMemberJoined links a member record to a user and marks it joined
	// Returns ErrMemberNotFound if record doesn't exist
	MarkMemberJoined(ctx context.Context, memberID, userID string) error

	// AddPoints increments a member's points balance by delta (may be negative)
	// Returns ErrMemberNotFound if no joined member record exists for the user
	AddPoints(ctx context.Context, familyID, userID string, delta int) error

	// CreateInvite stores a pending invite
	CreateInvite(ctx context.Context, invite *models.Invite) error

	// GetPendingInvite retrieves the newest pending invite for an email
	// Returns ErrInviteNotFound if none exists
	GetPendingInvite(ctx context.Context, email string) (*models.Invite, error)

	// AcceptInvite marks invite as accepted
	// Returns ErrInviteNotFound if invite doesn't exist
	AcceptInvite(ctx context.Context, inviteID string) error
}
