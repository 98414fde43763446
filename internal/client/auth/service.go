// Package auth управляет сессией клиента: вход по одноразовому коду,
// восстановление и обновление токенов, выход.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/pkg/api"
)

//go:generate moq -out api_mock.go . API

// API описывает серверные операции аутентификации
type API interface {
	MagicLink(ctx context.Context, email string) (*api.MagicLinkResponse, error)
	Verify(ctx context.Context, email, code string) (*api.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error)
	Logout(ctx context.Context) error
	SetAccessToken(token string)
}

// Service связывает API аутентификации с локальным хранилищем сессии
type Service struct {
	logger *slog.Logger
	api    API
	store  storage.SessionStorage
}

func NewService(logger *slog.Logger, apiClient API, store storage.SessionStorage) *Service {
	return &Service{
		logger: logger,
		api:    apiClient,
		store:  store,
	}
}

// RequestCode запрашивает одноразовый код входа на email.
// Код доставляется по почте, сервер возвращает только сообщение.
func (s *Service) RequestCode(ctx context.Context, email string) (string, error) {
	resp, err := s.api.MagicLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("request login code: %w", err)
	}
	return resp.Message, nil
}

// Verify обменивает введенный код на токены и сохраняет сессию
func (s *Service) Verify(ctx context.Context, email, code string) (*storage.Session, error) {
	resp, err := s.api.Verify(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("verify login code: %w", err)
	}

	session := sessionFromTokens(resp)
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.api.SetAccessToken(session.AccessToken)

	return session, nil
}

// Restore загружает сохраненную сессию и настраивает API клиента.
// Истекший access token обновляется по refresh token.
func (s *Service) Restore(ctx context.Context) (*storage.Session, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		return s.refresh(ctx, session)
	}

	s.api.SetAccessToken(session.AccessToken)
	return session, nil
}

// RefreshSession принудительно обновляет токены сессии. Используется
// после отказа сервера в доступе по текущему access token.
func (s *Service) RefreshSession(ctx context.Context) (*storage.Session, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, session)
}

func (s *Service) refresh(ctx context.Context, session *storage.Session) (*storage.Session, error) {
	resp, err := s.api.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	refreshed := sessionFromTokens(resp)
	if err := s.store.SaveSession(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("save refreshed session: %w", err)
	}
	s.api.SetAccessToken(refreshed.AccessToken)

	return refreshed, nil
}

// SetFamily записывает семью в сохраненную сессию после создания
// семьи или присоединения по приглашению
func (s *Service) SetFamily(ctx context.Context, familyID, role string) error {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		return err
	}

	session.FamilyID = familyID
	session.Role = role
	if err := s.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Logout отзывает refresh token на сервере и удаляет локальную сессию.
// Недоступность сервера не мешает локальному выходу.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "server logout failed, clearing local session anyway",
			slog.Any("error", err))
	}

	if err := s.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	s.api.SetAccessToken("")

	return nil
}

func sessionFromTokens(resp *api.TokenResponse) *storage.Session {
	return &storage.Session{
		Email:        resp.Profile.Email,
		UserID:       resp.Profile.ID,
		DisplayName:  resp.Profile.DisplayName,
		FamilyID:     resp.Profile.FamilyID,
		Role:         resp.Profile.Role,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + resp.ExpiresIn,
	}
}
