package models

import "time"

// Family представляет семью, корневую единицу владения данными
type Family struct {
	ID        string    `json:"id"`         // UUID семьи
	Name      string    `json:"name"`       // название семьи
	CreatedBy string    `json:"created_by"` // ID пользователя-создателя
	CreatedAt time.Time `json:"created_at"` // время создания
}

// Member представляет члена семьи (включая еще не присоединившихся)
type Member struct {
	ID        string    `json:"id"`         // UUID записи
	FamilyID  string    `json:"family_id"`  // ID семьи
	UserID    string    `json:"user_id"`    // ID пользователя (пустая строка до присоединения)
	Email     string    `json:"email"`      // email приглашенного
	Name      string    `json:"name"`       // имя, указанное при приглашении
	Role      string    `json:"role"`       // роль: Parent, Child, Grandparent
	Points    int       `json:"points"`     // накопленные очки за выполненные дела
	InvitedBy string    `json:"invited_by"` // ID пригласившего пользователя
	Joined    bool      `json:"joined"`     // присоединился ли пользователь
	CreatedAt time.Time `json:"created_at"` // время создания
}

// Статусы приглашения
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// Invite представляет приглашение в семью по email
type Invite struct {
	ID        string    `json:"id"`         // UUID приглашения
	FamilyID  string    `json:"family_id"`  // ID семьи
	Email     string    `json:"email"`      // email приглашенного
	Role      string    `json:"role"`       // предлагаемая роль
	InvitedBy string    `json:"invited_by"` // ID пригласившего
	Status    string    `json:"status"`     // pending или accepted
	CreatedAt time.Time `json:"created_at"` // время создания
}
