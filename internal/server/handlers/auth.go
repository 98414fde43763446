package handlers

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
	"github.com/iudanet/familyhub/internal/validation"
	"github.com/iudanet/familyhub/pkg/api"
)

// loginCodeLength число цифр в одноразовом коде входа
const loginCodeLength = 6

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	jwtConfig    JWTConfig
	codeTTL      time.Duration
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig, codeTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
		codeTTL:      codeTTL,
	}
}

// MagicLink обрабатывает POST /api/v1/auth/magiclink
// Выдает одноразовый код входа для email
func (h *AuthHandler) MagicLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.MagicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode magiclink request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", email), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	code, err := generateLoginCode()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate login code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// В БД хранится только bcrypt хеш кода
	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash login code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	loginCode := &models.LoginCode{
		ID:        uuid.New().String(),
		Email:     email,
		CodeHash:  string(codeHash),
		ExpiresAt: time.Now().Add(h.codeTTL),
		CreatedAt: time.Now(),
	}

	if err := h.tokenStorage.SaveLoginCode(ctx, loginCode); err != nil {
		h.logger.ErrorContext(ctx, "failed to save login code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Доставка по email не подключена: код уходит в лог сервера
	h.logger.InfoContext(ctx, "login code issued",
		slog.String("email", email),
		slog.String("code", code),
		slog.Time("expires_at", loginCode.ExpiresAt))

	resp := api.MagicLinkResponse{
		Message: "Login code sent",
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Verify обрабатывает POST /api/v1/auth/verify
// Обменивает код входа на токены, создает профиль при первом входе
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode verify request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", email), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Code == "" {
		h.sendError(w, "code is required", http.StatusBadRequest)
		return
	}

	loginCode, err := h.tokenStorage.GetActiveLoginCode(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrCodeNotFound) {
			h.logger.WarnContext(ctx, "no active login code", slog.String("email", email))
			h.sendError(w, "invalid or expired code", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get login code", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(loginCode.CodeHash), []byte(req.Code)); err != nil {
		h.logger.WarnContext(ctx, "login code mismatch", slog.String("email", email))
		h.sendError(w, "invalid or expired code", http.StatusUnauthorized)
		return
	}

	if err := h.tokenStorage.MarkLoginCodeUsed(ctx, loginCode.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to mark login code used", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := h.getOrCreateUser(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get or create user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", email),
		slog.String("user_id", user.ID))

	h.issueTokens(ctx, w, user)
}

// Refresh обрабатывает POST /api/v1/auth/refresh
// Обновление access token с помощью refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tokenID, secret, ok := SplitRefreshToken(req.RefreshToken)
	if !ok {
		h.sendError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	storedToken, err := h.tokenStorage.GetRefreshToken(ctx, tokenID)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token not found")
			h.sendError(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if storedToken.TokenHash != HashTokenSecret(secret) {
		h.logger.WarnContext(ctx, "refresh token hash mismatch", slog.String("user_id", storedToken.UserID))
		h.sendError(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	// Проверяем срок действия
	if time.Now().After(storedToken.ExpiresAt) {
		h.logger.WarnContext(ctx, "refresh token expired", slog.String("user_id", storedToken.UserID))
		h.sendError(w, "refresh token expired", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, storedToken.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Ротация: старый refresh token удаляется
	if err := h.tokenStorage.DeleteRefreshToken(ctx, tokenID); err != nil {
		h.logger.WarnContext(ctx, "failed to delete old refresh token", slog.Any("error", err))
		// Продолжаем выполнение
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	h.issueTokens(ctx, w, user)
}

// Logout обрабатывает POST /api/v1/auth/logout
// Выход пользователя (удаление всех refresh tokens)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deletedCount, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user tokens", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully",
		slog.String("user_id", userID),
		slog.Int("tokens_deleted", deletedCount))

	w.WriteHeader(http.StatusNoContent)
}

// Me обрабатывает GET и PUT /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetMe(w, r)
	case http.MethodPut:
		h.handleUpdateMe(w, r)
	default:
		h.sendError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AuthHandler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, profileFromUser(user), http.StatusOK)
}

func (h *AuthHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode profile request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.DisplayName != "" {
		if err := validation.ValidateDisplayName(req.DisplayName); err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		user.DisplayName = req.DisplayName
	}
	if req.Role != "" {
		if err := validation.ValidateRole(req.Role); err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		user.Role = req.Role
	}
	user.UpdatedAt = time.Now()

	if err := h.userStorage.UpdateProfile(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "failed to update profile", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("user_id", userID))

	h.sendJSON(w, profileFromUser(user), http.StatusOK)
}

// getOrCreateUser возвращает профиль, создавая его при первом входе
func (h *AuthHandler) getOrCreateUser(ctx context.Context, email string) (*models.UserProfile, error) {
	user, err := h.userStorage.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now()
	user = &models.UserProfile{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayNameFromEmail(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		// Гонка двух первых входов: профиль уже создан
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return h.userStorage.GetUserByEmail(ctx, email)
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "user profile created",
		slog.String("email", email),
		slog.String("user_id", user.ID))

	return user, nil
}

// issueTokens генерирует пару токенов и отправляет TokenResponse
func (h *AuthHandler) issueTokens(ctx context.Context, w http.ResponseWriter, user *models.UserProfile) {
	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	tokenID := uuid.New().String()
	refreshToken, secretHash, expiresAt, err := GenerateRefreshToken(h.jwtConfig, tokenID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := &models.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		TokenHash: secretHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Profile:      profileFromUser(user),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// generateLoginCode генерирует случайный цифровой код
func generateLoginCode() (string, error) {
	digits := make([]byte, loginCodeLength)
	random := make([]byte, loginCodeLength)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range random {
		digits[i] = '0' + b%10
	}
	return string(digits), nil
}

// displayNameFromEmail выводит имя по умолчанию из локальной части email
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}
	return local
}

func profileFromUser(user *models.UserProfile) api.Profile {
	return api.Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		FamilyID:    user.FamilyID,
		Role:        user.Role,
	}
}

// sendJSON отправляет JSON ответ
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
