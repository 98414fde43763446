package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/familyhub/internal/server/handlers"
)

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:          []byte("test-secret-key"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func protectedHandler(t *testing.T, expectedUserID, expectedEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := handlers.GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, expectedUserID, userID)

		email, ok := handlers.GetEmail(r.Context())
		require.True(t, ok)
		assert.Equal(t, expectedEmail, email)

		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testJWTConfig()

	token, _, err := handlers.GenerateAccessToken(cfg, "user123", "alice@example.com")
	require.NoError(t, err)

	mw := AuthMiddleware(slog.Default(), cfg)
	handler := mw(protectedHandler(t, "user123", "alice@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cfg := testJWTConfig()

	expiredCfg := cfg
	expiredCfg.AccessTokenTTL = -time.Minute
	expiredToken, _, err := handlers.GenerateAccessToken(expiredCfg, "user123", "alice@example.com")
	require.NoError(t, err)

	otherSecret := cfg
	otherSecret.Secret = []byte("other-secret")
	forgedToken, _, err := handlers.GenerateAccessToken(otherSecret, "user123", "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "not bearer", authHeader: "Basic abc"},
		{name: "garbage token", authHeader: "Bearer not-a-jwt"},
		{name: "expired token", authHeader: "Bearer " + expiredToken},
		{name: "wrong secret", authHeader: "Bearer " + forgedToken},
	}

	mw := AuthMiddleware(slog.Default(), cfg)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
