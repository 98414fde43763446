package storage

import (
	"context"
	"time"
)

// Session представляет сохраненную на клиенте сессию пользователя.
// Токены хранятся как есть: файл базы защищен правами 0600,
// шифрования на этом уровне нет.
type Session struct {
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	FamilyID     string `json:"family_id"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix-время истечения access token
}

// Expired сообщает, истек ли access token сессии
func (s *Session) Expired() bool {
	return time.Now().Unix() >= s.ExpiresAt
}

// SessionStorage определяет интерфейс хранения сессии на клиенте
type SessionStorage interface {
	// SaveSession сохраняет сессию, заменяя предыдущую
	SaveSession(ctx context.Context, session *Session) error

	// GetSession возвращает сохраненную сессию.
	// Возвращает ErrSessionNotFound, если сессии нет.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession удаляет сессию (logout)
	DeleteSession(ctx context.Context) error
}
