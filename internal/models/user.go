package models

import "time"

// Роли членов семьи
const (
	RoleParent      = "Parent"
	RoleChild       = "Child"
	RoleGrandparent = "Grandparent"
)

// UserProfile представляет профиль пользователя в системе
type UserProfile struct {
	ID          string    `json:"id"`           // UUID пользователя
	Email       string    `json:"email"`        // уникальный email (идентичность из magic link)
	DisplayName string    `json:"display_name"` // отображаемое имя
	FamilyID    string    `json:"family_id"`    // ID семьи (пустая строка = не в семье)
	Role        string    `json:"role"`         // роль в семье: Parent, Child, Grandparent
	CreatedAt   time.Time `json:"created_at"`   // время создания
	UpdatedAt   time.Time `json:"updated_at"`   // время последнего обновления
}

// LoginCode представляет одноразовый код входа (magic link)
type LoginCode struct {
	ID        string    `json:"id"`         // UUID кода
	Email     string    `json:"email"`      // email, для которого выдан код
	CodeHash  string    `json:"code_hash"`  // bcrypt хеш кода
	Used      bool      `json:"used"`       // код уже использован
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ID        string    `json:"id"`         // UUID токена
	UserID    string    `json:"user_id"`    // ID пользователя
	TokenHash string    `json:"token_hash"` // bcrypt хеш токена
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
