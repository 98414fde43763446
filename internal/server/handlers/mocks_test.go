package handlers

import (
	"context"
	"sync"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

// mockUserStorage is an in-memory UserStorage for testing
type mockUserStorage struct {
	mu          sync.Mutex
	users       map[string]*models.UserProfile // id -> profile
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.UserProfile)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, user *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.DisplayName = user.DisplayName
	u.Role = user.Role
	u.UpdatedAt = user.UpdatedAt
	return nil
}

func (m *mockUserStorage) SetFamily(ctx context.Context, userID, familyID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.FamilyID = familyID
	u.Role = role
	return nil
}

// mockTokenStorage is an in-memory TokenStorage for testing
type mockTokenStorage struct {
	mu         sync.Mutex
	codes      map[string]*models.LoginCode    // id -> code
	tokens     map[string]*models.RefreshToken // id -> token
	saveError  error
	savedCodes []*models.LoginCode
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{
		codes:  make(map[string]*models.LoginCode),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (m *mockTokenStorage) SaveLoginCode(ctx context.Context, code *models.LoginCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	for _, c := range m.codes {
		if c.Email == code.Email {
			c.Used = true
		}
	}
	clone := *code
	m.codes[code.ID] = &clone
	m.savedCodes = append(m.savedCodes, &clone)
	return nil
}

func (m *mockTokenStorage) GetActiveLoginCode(ctx context.Context, email string) (*models.LoginCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *models.LoginCode
	for _, c := range m.codes {
		if c.Email != email || c.Used {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, storage.ErrCodeNotFound
	}
	clone := *newest
	return &clone, nil
}

func (m *mockTokenStorage) MarkLoginCodeUsed(ctx context.Context, codeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[codeID]
	if !ok {
		return storage.ErrCodeNotFound
	}
	c.Used = true
	return nil
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	clone := *token
	m.tokens[token.ID] = &clone
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, tokenID string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[tokenID]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (m *mockTokenStorage) GetUserTokens(ctx context.Context, userID string) ([]*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tokens := make([]*models.RefreshToken, 0)
	for _, t := range m.tokens {
		if t.UserID == userID {
			clone := *t
			tokens = append(tokens, &clone)
		}
	}
	return tokens, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[tokenID]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenID)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockTokenStorage) DeleteExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// mockFamilyStorage is an in-memory FamilyStorage for testing
type mockFamilyStorage struct {
	mu       sync.Mutex
	families map[string]*models.Family
	members  map[string]*models.Member
	invites  map[string]*models.Invite
}

func newMockFamilyStorage() *mockFamilyStorage {
	return &mockFamilyStorage{
		families: make(map[string]*models.Family),
		members:  make(map[string]*models.Member),
		invites:  make(map[string]*models.Invite),
	}
}

func (m *mockFamilyStorage) CreateFamily(ctx context.Context, family *models.Family) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *family
	m.families[family.ID] = &clone
	return nil
}

func (m *mockFamilyStorage) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.families[familyID]
	if !ok {
		return nil, storage.ErrFamilyNotFound
	}
	clone := *f
	return &clone, nil
}

func (m *mockFamilyStorage) CreateMember(ctx context.Context, member *models.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *member
	m.members[member.ID] = &clone
	return nil
}

func (m *mockFamilyStorage) ListMembers(ctx context.Context, familyID string) ([]*models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make([]*models.Member, 0)
	for _, mb := range m.members {
		if mb.FamilyID == familyID {
			clone := *mb
			members = append(members, &clone)
		}
	}
	return members, nil
}

func (m *mockFamilyStorage) GetMemberByEmail(ctx context.Context, familyID, email string) (*models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mb := range m.members {
		if mb.FamilyID == familyID && mb.Email == email {
			clone := *mb
			return &clone, nil
		}
	}
	return nil, storage.ErrMemberNotFound
}

func (m *mockFamilyStorage) MarkMemberJoined(ctx context.Context, memberID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mb, ok := m.members[memberID]
	if !ok {
		return storage.ErrMemberNotFound
	}
	mb.UserID = userID
	mb.Joined = true
	return nil
}

func (m *mockFamilyStorage) AddPoints(ctx context.Context, familyID, userID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mb := range m.members {
		if mb.FamilyID == familyID && mb.UserID == userID && mb.Joined {
			mb.Points += delta
			return nil
		}
	}
	return storage.ErrMemberNotFound
}

func (m *mockFamilyStorage) CreateInvite(ctx context.Context, invite *models.Invite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *invite
	m.invites[invite.ID] = &clone
	return nil
}

func (m *mockFamilyStorage) GetPendingInvite(ctx context.Context, email string) (*models.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var newest *models.Invite
	for _, inv := range m.invites {
		if inv.Email != email || inv.Status != models.InviteStatusPending {
			continue
		}
		if newest == nil || inv.CreatedAt.After(newest.CreatedAt) {
			newest = inv
		}
	}
	if newest == nil {
		return nil, storage.ErrInviteNotFound
	}
	clone := *newest
	return &clone, nil
}

func (m *mockFamilyStorage) AcceptInvite(ctx context.Context, inviteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invites[inviteID]
	if !ok {
		return storage.ErrInviteNotFound
	}
	inv.Status = models.InviteStatusAccepted
	return nil
}

// mockDocStorage is an in-memory DocumentStorage for testing
type mockDocStorage struct {
	mu   sync.Mutex
	docs map[string]*models.Document // familyID+"/"+id -> doc
}

func newMockDocStorage() *mockDocStorage {
	return &mockDocStorage{docs: make(map[string]*models.Document)}
}

func (m *mockDocStorage) SaveDocument(ctx context.Context, doc *models.Document) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := doc.FamilyID + "/" + doc.ID
	if existing, ok := m.docs[key]; ok && !doc.IsNewerThan(existing) {
		return false, nil
	}
	m.docs[key] = doc.Clone()
	return true, nil
}

func (m *mockDocStorage) GetDocument(ctx context.Context, familyID, docID string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[familyID+"/"+docID]
	if !ok {
		return nil, storage.ErrDocNotFound
	}
	return doc.Clone(), nil
}

func (m *mockDocStorage) ListDocuments(ctx context.Context, familyID, collection, parentID string) ([]*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]*models.Document, 0)
	for _, doc := range m.docs {
		if doc.FamilyID != familyID || doc.Collection != collection || doc.Deleted {
			continue
		}
		if parentID != "" && doc.ParentID != parentID {
			continue
		}
		docs = append(docs, doc.Clone())
	}
	return docs, nil
}

func (m *mockDocStorage) ListDocumentsSince(ctx context.Context, familyID string, since int64) ([]*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := make([]*models.Document, 0)
	for _, doc := range m.docs {
		if doc.FamilyID == familyID && doc.Rev > since {
			docs = append(docs, doc.Clone())
		}
	}
	return docs, nil
}

func (m *mockDocStorage) MaxRev(ctx context.Context, familyID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var maxRev int64
	for _, doc := range m.docs {
		if doc.FamilyID == familyID && doc.Rev > maxRev {
			maxRev = doc.Rev
		}
	}
	return maxRev, nil
}
