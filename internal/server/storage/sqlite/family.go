package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

// CreateFamily creates a new family
func (s *Storage) CreateFamily(ctx context.Context, family *models.Family) error {
	query := `
		INSERT INTO families (id, name, created_by, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		family.ID,
		family.Name,
		family.CreatedBy,
		family.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert family: %w", err)
	}

	return nil
}

// GetFamily retrieves family by ID
// Returns ErrFamilyNotFound if family doesn't exist
func (s *Storage) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	query := `SELECT id, name, created_by, created_at FROM families WHERE id = ?`

	family := &models.Family{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, familyID).Scan(
		&family.ID,
		&family.Name,
		&family.CreatedBy,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	family.CreatedAt = unixToTime(createdAt)

	return family, nil
}

// CreateMember adds a member record to a family
func (s *Storage) CreateMember(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (id, family_id, user_id, email, name, role, points, invited_by, joined, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		member.ID,
		member.FamilyID,
		member.UserID,
		member.Email,
		member.Name,
		member.Role,
		member.Points,
		member.InvitedBy,
		boolToInt(member.Joined),
		member.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// ListMembers retrieves all member records of a family
// Returns empty slice if none found
func (s *Storage) ListMembers(ctx context.Context, familyID string) ([]*models.Member, error) {
	query := `
		SELECT id, family_id, user_id, email, name, role, points, invited_by, joined, created_at
		FROM members
		WHERE family_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	members := make([]*models.Member, 0)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// GetMemberByEmail retrieves a member record by family and email
// Returns ErrMemberNotFound if record doesn't exist
func (s *Storage) GetMemberByEmail(ctx context.Context, familyID, email string) (*models.Member, error) {
	query := `
		SELECT id, family_id, user_id, email, name, role, points, invited_by, joined, created_at
		FROM members
		WHERE family_id = ? AND email = ?
		LIMIT 1
	`

	rows, err := s.db.QueryContext(ctx, query, familyID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query member: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		return nil, storage.ErrMemberNotFound
	}

	return scanMember(rows)
}

// MarkMemberJoined links a member record to a user and marks it joined
// Returns ErrMemberNotFound if record doesn't exist
func (s *Storage) MarkMemberJoined(ctx context.Context, memberID, userID string) error {
	query := `UPDATE members SET user_id = ?, joined = 1 WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, userID, memberID)
	if err != nil {
		return fmt.Errorf("failed to mark member joined: %w", err)
	}

	return requireRowAffected(result, storage.ErrMemberNotFound)
}

// AddPoints increments a member's points balance by delta (may be negative)
// Returns ErrMemberNotFound if no joined member record exists for the user
func (s *Storage) AddPoints(ctx context.Context, familyID, userID string, delta int) error {
	query := `UPDATE members SET points = points + ? WHERE family_id = ? AND user_id = ? AND joined = 1`

	result, err := s.db.ExecContext(ctx, query, delta, familyID, userID)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}

	return requireRowAffected(result, storage.ErrMemberNotFound)
}

// CreateInvite stores a pending invite
func (s *Storage) CreateInvite(ctx context.Context, invite *models.Invite) error {
	query := `
		INSERT INTO invites (id, family_id, email, role, invited_by, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		invite.ID,
		invite.FamilyID,
		invite.Email,
		invite.Role,
		invite.InvitedBy,
		invite.Status,
		invite.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invite: %w", err)
	}

	return nil
}

// GetPendingInvite retrieves the newest pending invite for an email
// Returns ErrInviteNotFound if none exists
func (s *Storage) GetPendingInvite(ctx context.Context, email string) (*models.Invite, error) {
	query := `
		SELECT id, family_id, email, role, invited_by, status, created_at
		FROM invites
		WHERE email = ? AND status = ?
		ORDER BY created_at DESC
		LIMIT 1
	`

	invite := &models.Invite{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, email, models.InviteStatusPending).Scan(
		&invite.ID,
		&invite.FamilyID,
		&invite.Email,
		&invite.Role,
		&invite.InvitedBy,
		&invite.Status,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	invite.CreatedAt = unixToTime(createdAt)

	return invite, nil
}

// AcceptInvite marks invite as accepted
// Returns ErrInviteNotFound if invite doesn't exist
func (s *Storage) AcceptInvite(ctx context.Context, inviteID string) error {
	query := `UPDATE invites SET status = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, models.InviteStatusAccepted, inviteID)
	if err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	return requireRowAffected(result, storage.ErrInviteNotFound)
}

// scanMember сканирует одну строку members
func scanMember(rows *sql.Rows) (*models.Member, error) {
	member := &models.Member{}
	var joined int
	var createdAt int64

	err := rows.Scan(
		&member.ID,
		&member.FamilyID,
		&member.UserID,
		&member.Email,
		&member.Name,
		&member.Role,
		&member.Points,
		&member.InvitedBy,
		&joined,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan member: %w", err)
	}

	member.Joined = intToBool(joined)
	member.CreatedAt = unixToTime(createdAt)

	return member, nil
}
