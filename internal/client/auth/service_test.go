package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/pkg/api"
)

// memorySessions хранит сессию в памяти, достаточно для тестов сервиса
type memorySessions struct {
	session *storage.Session
}

func (m *memorySessions) SaveSession(ctx context.Context, session *storage.Session) error {
	m.session = session
	return nil
}

func (m *memorySessions) GetSession(ctx context.Context) (*storage.Session, error) {
	if m.session == nil {
		return nil, storage.ErrSessionNotFound
	}
	return m.session, nil
}

func (m *memorySessions) DeleteSession(ctx context.Context) error {
	if m.session == nil {
		return storage.ErrSessionNotFound
	}
	m.session = nil
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *api.TokenResponse {
	return &api.TokenResponse{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    900,
		Profile: api.Profile{
			ID:          "user-1",
			Email:       "mama@example.com",
			DisplayName: "Mama",
			FamilyID:    "fam-1",
			Role:        "Parent",
		},
	}
}

func TestService_RequestCode(t *testing.T) {
	apiMock := &APIMock{
		MagicLinkFunc: func(ctx context.Context, email string) (*api.MagicLinkResponse, error) {
			return &api.MagicLinkResponse{Message: "code sent"}, nil
		},
	}
	svc := NewService(testLogger(), apiMock, &memorySessions{})

	msg, err := svc.RequestCode(context.Background(), "mama@example.com")
	require.NoError(t, err)
	assert.Equal(t, "code sent", msg)

	require.Len(t, apiMock.MagicLinkCalls(), 1)
	assert.Equal(t, "mama@example.com", apiMock.MagicLinkCalls()[0].Email)
}

func TestService_Verify_SavesSession(t *testing.T) {
	apiMock := &APIMock{
		VerifyFunc: func(ctx context.Context, email, code string) (*api.TokenResponse, error) {
			return testTokens(), nil
		},
		SetAccessTokenFunc: func(token string) {},
	}
	store := &memorySessions{}
	svc := NewService(testLogger(), apiMock, store)

	session, err := svc.Verify(context.Background(), "mama@example.com", "123456")
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "fam-1", session.FamilyID)
	assert.Equal(t, "access-1", session.AccessToken)
	assert.False(t, session.Expired())

	require.NotNil(t, store.session)
	assert.Equal(t, "refresh-1", store.session.RefreshToken)

	require.Len(t, apiMock.SetAccessTokenCalls(), 1)
	assert.Equal(t, "access-1", apiMock.SetAccessTokenCalls()[0].Token)
}

func TestService_Verify_BadCode(t *testing.T) {
	apiMock := &APIMock{
		VerifyFunc: func(ctx context.Context, email, code string) (*api.TokenResponse, error) {
			return nil, errors.New("invalid code")
		},
	}
	store := &memorySessions{}
	svc := NewService(testLogger(), apiMock, store)

	_, err := svc.Verify(context.Background(), "mama@example.com", "000000")
	require.Error(t, err)
	assert.Nil(t, store.session)
}

func TestService_Restore_ValidSession(t *testing.T) {
	apiMock := &APIMock{
		SetAccessTokenFunc: func(token string) {},
	}
	store := &memorySessions{session: &storage.Session{
		UserID:      "user-1",
		AccessToken: "access-1",
		ExpiresAt:   time.Now().Add(10 * time.Minute).Unix(),
	}}
	svc := NewService(testLogger(), apiMock, store)

	session, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	// Токен не истек, Refresh не вызывался
	assert.Empty(t, apiMock.RefreshCalls())
	require.Len(t, apiMock.SetAccessTokenCalls(), 1)
}

func TestService_Restore_RefreshesExpired(t *testing.T) {
	apiMock := &APIMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
			tokens := testTokens()
			tokens.AccessToken = "access-2"
			tokens.RefreshToken = "refresh-2"
			return tokens, nil
		},
		SetAccessTokenFunc: func(token string) {},
	}
	store := &memorySessions{session: &storage.Session{
		UserID:       "user-1",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Minute).Unix(),
	}}
	svc := NewService(testLogger(), apiMock, store)

	session, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "refresh-2", store.session.RefreshToken, "ротация refresh token сохранена")

	require.Len(t, apiMock.RefreshCalls(), 1)
	assert.Equal(t, "refresh-1", apiMock.RefreshCalls()[0].RefreshToken)
}

func TestService_Restore_NoSession(t *testing.T) {
	svc := NewService(testLogger(), &APIMock{}, &memorySessions{})

	_, err := svc.Restore(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestService_SetFamily(t *testing.T) {
	store := &memorySessions{session: &storage.Session{UserID: "user-1"}}
	svc := NewService(testLogger(), &APIMock{}, store)

	require.NoError(t, svc.SetFamily(context.Background(), "fam-9", "Parent"))
	assert.Equal(t, "fam-9", store.session.FamilyID)
	assert.Equal(t, "Parent", store.session.Role)
}

func TestService_Logout(t *testing.T) {
	apiMock := &APIMock{
		LogoutFunc:         func(ctx context.Context) error { return nil },
		SetAccessTokenFunc: func(token string) {},
	}
	store := &memorySessions{session: &storage.Session{UserID: "user-1"}}
	svc := NewService(testLogger(), apiMock, store)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, store.session)

	// Токен сброшен
	calls := apiMock.SetAccessTokenCalls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Token)
}

func TestService_Logout_ServerDown(t *testing.T) {
	apiMock := &APIMock{
		LogoutFunc:         func(ctx context.Context) error { return errors.New("connection refused") },
		SetAccessTokenFunc: func(token string) {},
	}
	store := &memorySessions{session: &storage.Session{UserID: "user-1"}}
	svc := NewService(testLogger(), apiMock, store)

	// Локальный выход проходит даже при недоступном сервере
	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, store.session)
}
