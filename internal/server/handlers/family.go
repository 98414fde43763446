package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
	"github.com/iudanet/familyhub/internal/validation"
	"github.com/iudanet/familyhub/pkg/api"
)

// FamilyHandler обрабатывает запросы управления семьей
type FamilyHandler struct {
	logger        *slog.Logger
	familyStorage storage.FamilyStorage
	userStorage   storage.UserStorage
}

// NewFamilyHandler создает новый handler для семей
func NewFamilyHandler(logger *slog.Logger, familyStorage storage.FamilyStorage, userStorage storage.UserStorage) *FamilyHandler {
	return &FamilyHandler{
		logger:        logger,
		familyStorage: familyStorage,
		userStorage:   userStorage,
	}
}

// Create обрабатывает POST /api/v1/families
// Создает новую семью, создатель становится родителем
func (h *FamilyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create family request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if err := validation.ValidateTitle(name); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if user.FamilyID != "" {
		h.sendError(w, "user already belongs to a family", http.StatusConflict)
		return
	}

	now := time.Now()
	family := &models.Family{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: userID,
		CreatedAt: now,
	}

	if err := h.familyStorage.CreateFamily(ctx, family); err != nil {
		h.logger.ErrorContext(ctx, "failed to create family", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Создатель сразу становится присоединившимся родителем
	member := &models.Member{
		ID:        uuid.New().String(),
		FamilyID:  family.ID,
		UserID:    userID,
		Email:     user.Email,
		Name:      user.DisplayName,
		Role:      models.RoleParent,
		InvitedBy: userID,
		Joined:    true,
		CreatedAt: now,
	}

	if err := h.familyStorage.CreateMember(ctx, member); err != nil {
		h.logger.ErrorContext(ctx, "failed to create member", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.SetFamily(ctx, userID, family.ID, models.RoleParent); err != nil {
		h.logger.ErrorContext(ctx, "failed to set user family", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "family created",
		slog.String("family_id", family.ID),
		slog.String("user_id", userID))

	resp := api.FamilyResponse{
		ID:        family.ID,
		Name:      family.Name,
		CreatedBy: family.CreatedBy,
		CreatedAt: family.CreatedAt,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Get обрабатывает GET /api/v1/families/{id}
func (h *FamilyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID, ok := h.requireFamilyAccess(w, r)
	if !ok {
		return
	}

	family, err := h.familyStorage.GetFamily(ctx, familyID)
	if err != nil {
		if errors.Is(err, storage.ErrFamilyNotFound) {
			h.sendError(w, "family not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get family", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.FamilyResponse{
		ID:        family.ID,
		Name:      family.Name,
		CreatedBy: family.CreatedBy,
		CreatedAt: family.CreatedAt,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Invite обрабатывает POST /api/v1/families/{id}/invites
// Приглашает нового члена семьи по email
func (h *FamilyHandler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, _ := GetUserID(ctx)

	familyID, ok := h.requireFamilyAccess(w, r)
	if !ok {
		return
	}

	var req api.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode invite request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(email); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateRole(req.Role); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Повторное приглашение того же email отклоняется
	if _, err := h.familyStorage.GetMemberByEmail(ctx, familyID, email); err == nil {
		h.sendError(w, "member already invited", http.StatusConflict)
		return
	} else if !errors.Is(err, storage.ErrMemberNotFound) {
		h.logger.ErrorContext(ctx, "failed to check member", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	member := &models.Member{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Role:      req.Role,
		InvitedBy: userID,
		CreatedAt: now,
	}

	if err := h.familyStorage.CreateMember(ctx, member); err != nil {
		h.logger.ErrorContext(ctx, "failed to create member", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	invite := &models.Invite{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		Email:     email,
		Role:      req.Role,
		InvitedBy: userID,
		Status:    models.InviteStatusPending,
		CreatedAt: now,
	}

	if err := h.familyStorage.CreateInvite(ctx, invite); err != nil {
		h.logger.ErrorContext(ctx, "failed to create invite", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "member invited",
		slog.String("family_id", familyID),
		slog.String("email", email),
		slog.String("role", req.Role))

	resp := api.InviteResponse{
		ID:       invite.ID,
		FamilyID: invite.FamilyID,
		Email:    invite.Email,
		Role:     invite.Role,
		Status:   invite.Status,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// Join обрабатывает POST /api/v1/families/join
// Присоединяет пользователя к семье по ожидающему приглашению
func (h *FamilyHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if user.FamilyID != "" {
		h.sendError(w, "user already belongs to a family", http.StatusConflict)
		return
	}

	invite, err := h.familyStorage.GetPendingInvite(ctx, user.Email)
	if err != nil {
		if errors.Is(err, storage.ErrInviteNotFound) {
			h.sendError(w, "no pending invite", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get invite", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	member, err := h.familyStorage.GetMemberByEmail(ctx, invite.FamilyID, user.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get member record", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.familyStorage.MarkMemberJoined(ctx, member.ID, userID); err != nil {
		h.logger.ErrorContext(ctx, "failed to mark member joined", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.familyStorage.AcceptInvite(ctx, invite.ID); err != nil {
		h.logger.ErrorContext(ctx, "failed to accept invite", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.SetFamily(ctx, userID, invite.FamilyID, invite.Role); err != nil {
		h.logger.ErrorContext(ctx, "failed to set user family", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user joined family",
		slog.String("family_id", invite.FamilyID),
		slog.String("user_id", userID),
		slog.String("role", invite.Role))

	resp := api.JoinFamilyResponse{
		FamilyID: invite.FamilyID,
		Role:     invite.Role,
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Members обрабатывает GET /api/v1/families/{id}/members
func (h *FamilyHandler) Members(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID, ok := h.requireFamilyAccess(w, r)
	if !ok {
		return
	}

	members, err := h.familyStorage.ListMembers(ctx, familyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list members", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ListMembersResponse{
		Members: make([]api.MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, api.MemberResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Email:  m.Email,
			Name:   m.Name,
			Role:   m.Role,
			Points: m.Points,
			Joined: m.Joined,
		})
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// requireFamilyAccess извлекает {id} из пути и проверяет,
// что аутентифицированный пользователь состоит в этой семье
func (h *FamilyHandler) requireFamilyAccess(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	familyID := r.PathValue("id")
	if familyID == "" {
		h.sendError(w, "family id is required", http.StatusBadRequest)
		return "", false
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return "", false
	}

	if user.FamilyID != familyID {
		h.logger.WarnContext(ctx, "family access denied",
			slog.String("user_id", userID),
			slog.String("family_id", familyID))
		h.sendError(w, "forbidden", http.StatusForbidden)
		return "", false
	}

	return familyID, true
}

func (h *FamilyHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *FamilyHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
