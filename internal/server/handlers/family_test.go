package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/pkg/api"
)

func newFamilyTestUser(t *testing.T, users *mockUserStorage, email string) *models.UserProfile {
	user := &models.UserProfile{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, users.CreateUser(context.Background(), user))
	return user
}

func withUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
}

func TestFamilyHandler_Create(t *testing.T) {
	users := newMockUserStorage()
	families := newMockFamilyStorage()
	h := NewFamilyHandler(slog.Default(), families, users)

	user := newFamilyTestUser(t, users, "alice@example.com")

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families",
		jsonBody(t, api.CreateFamilyRequest{Name: "The Smiths"})), user.ID)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.FamilyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "The Smiths", resp.Name)
	assert.Equal(t, user.ID, resp.CreatedBy)

	// Создатель стал присоединившимся родителем
	updated, err := users.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, updated.FamilyID)
	assert.Equal(t, models.RoleParent, updated.Role)

	members, err := families.ListMembers(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].Joined)

	// Повторное создание отклоняется
	rec = httptest.NewRecorder()
	h.Create(rec, withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families",
		jsonBody(t, api.CreateFamilyRequest{Name: "Second"})), user.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFamilyHandler_InviteAndJoin(t *testing.T) {
	users := newMockUserStorage()
	families := newMockFamilyStorage()
	h := NewFamilyHandler(slog.Default(), families, users)

	parent := newFamilyTestUser(t, users, "mom@example.com")

	// Родитель создает семью
	rec := httptest.NewRecorder()
	h.Create(rec, withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families",
		jsonBody(t, api.CreateFamilyRequest{Name: "The Smiths"})), parent.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var family api.FamilyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&family))

	// Приглашение бабушки
	inviteReq := withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families/"+family.ID+"/invites",
		jsonBody(t, api.InviteRequest{Email: "granny@example.com", Name: "Granny", Role: models.RoleGrandparent})), parent.ID)
	inviteReq.SetPathValue("id", family.ID)
	rec = httptest.NewRecorder()
	h.Invite(rec, inviteReq)
	require.Equal(t, http.StatusCreated, rec.Code)

	var invite api.InviteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&invite))
	assert.Equal(t, models.InviteStatusPending, invite.Status)

	// Бабушка входит и присоединяется
	granny := newFamilyTestUser(t, users, "granny@example.com")

	rec = httptest.NewRecorder()
	h.Join(rec, withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families/join", nil), granny.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var joined api.JoinFamilyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&joined))
	assert.Equal(t, family.ID, joined.FamilyID)
	assert.Equal(t, models.RoleGrandparent, joined.Role)

	updated, err := users.GetUserByID(context.Background(), granny.ID)
	require.NoError(t, err)
	assert.Equal(t, family.ID, updated.FamilyID)

	// Список членов: родитель и бабушка, обе joined
	membersReq := withUserID(httptest.NewRequest(http.MethodGet, "/api/v1/families/"+family.ID+"/members", nil), parent.ID)
	membersReq.SetPathValue("id", family.ID)
	rec = httptest.NewRecorder()
	h.Members(rec, membersReq)
	require.Equal(t, http.StatusOK, rec.Code)

	var membersResp api.ListMembersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&membersResp))
	assert.Len(t, membersResp.Members, 2)
	for _, m := range membersResp.Members {
		assert.True(t, m.Joined)
	}
}

func TestFamilyHandler_Join_NoInvite(t *testing.T) {
	users := newMockUserStorage()
	families := newMockFamilyStorage()
	h := NewFamilyHandler(slog.Default(), families, users)

	user := newFamilyTestUser(t, users, "stranger@example.com")

	rec := httptest.NewRecorder()
	h.Join(rec, withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families/join", nil), user.ID))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFamilyHandler_Invite_DuplicateEmail(t *testing.T) {
	users := newMockUserStorage()
	families := newMockFamilyStorage()
	h := NewFamilyHandler(slog.Default(), families, users)

	parent := newFamilyTestUser(t, users, "mom@example.com")

	rec := httptest.NewRecorder()
	h.Create(rec, withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families",
		jsonBody(t, api.CreateFamilyRequest{Name: "The Smiths"})), parent.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var family api.FamilyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&family))

	invite := func() *httptest.ResponseRecorder {
		req := withUserID(httptest.NewRequest(http.MethodPost, "/api/v1/families/"+family.ID+"/invites",
			jsonBody(t, api.InviteRequest{Email: "kid@example.com", Role: models.RoleChild})), parent.ID)
		req.SetPathValue("id", family.ID)
		rec := httptest.NewRecorder()
		h.Invite(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, invite().Code)
	assert.Equal(t, http.StatusConflict, invite().Code)
}

func TestFamilyHandler_ForeignFamilyForbidden(t *testing.T) {
	users := newMockUserStorage()
	families := newMockFamilyStorage()
	h := NewFamilyHandler(slog.Default(), families, users)

	user := newFamilyTestUser(t, users, "alice@example.com")

	otherFamily := uuid.New().String()
	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/v1/families/"+otherFamily+"/members", nil), user.ID)
	req.SetPathValue("id", otherFamily)

	rec := httptest.NewRecorder()
	h.Members(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
