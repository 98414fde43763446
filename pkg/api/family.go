package api

import "time"

// CreateFamilyRequest представляет запрос на создание семьи
type CreateFamilyRequest struct {
	Name string `json:"name"` // название семьи
}

// FamilyResponse представляет семью в API
type FamilyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteRequest представляет запрос на приглашение члена семьи
type InviteRequest struct {
	Email string `json:"email"` // email приглашенного
	Name  string `json:"name"`  // имя приглашенного
	Role  string `json:"role"`  // роль: Parent, Child, Grandparent
}

// InviteResponse представляет приглашение в API
type InviteResponse struct {
	ID       string `json:"id"`
	FamilyID string `json:"family_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// JoinFamilyResponse представляет результат присоединения к семье
type JoinFamilyResponse struct {
	FamilyID string `json:"family_id"` // ID семьи, к которой присоединился пользователь
	Role     string `json:"role"`      // роль из приглашения
}

// MemberResponse представляет члена семьи в API
type MemberResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Points int    `json:"points"`
	Joined bool   `json:"joined"`
}

// ListMembersResponse представляет ответ со списком членов семьи
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}
