package api

// MagicLinkRequest представляет запрос на выдачу одноразового кода входа
type MagicLinkRequest struct {
	Email string `json:"email"` // email пользователя
}

// MagicLinkResponse представляет ответ на запрос кода входа.
// Сам код доставляется по email (вне зоны ответственности сервера API).
type MagicLinkResponse struct {
	Message string `json:"message"` // сообщение для пользователя
}

// VerifyRequest представляет запрос на обмен кода входа на токены
type VerifyRequest struct {
	Email string `json:"email"` // email пользователя
	Code  string `json:"code"`  // одноразовый код из письма
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"` // действующий refresh token
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string  `json:"access_token"`  // JWT access token
	RefreshToken string  `json:"refresh_token"` // refresh token
	ExpiresIn    int64   `json:"expires_in"`    // время жизни access token в секундах
	Profile      Profile `json:"profile"`       // профиль пользователя
}

// Profile представляет профиль пользователя в API
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FamilyID    string `json:"family_id"`
	Role        string `json:"role"`
}

// UpdateProfileRequest представляет запрос на обновление профиля
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
