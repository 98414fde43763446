package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/familyhub/internal/lww"
	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
	"github.com/iudanet/familyhub/internal/server/watch"
	"github.com/iudanet/familyhub/internal/validation"
	"github.com/iudanet/familyhub/pkg/api"
)

// DocsHandler обрабатывает операции над документами семейного хранилища.
// Каждая запись получает монотонно растущую ревизию своей семьи.
type DocsHandler struct {
	logger        *slog.Logger
	docStorage    storage.DocumentStorage
	familyStorage storage.FamilyStorage
	userStorage   storage.UserStorage
	hub           *watch.Hub
	clocks        map[string]*lww.RevClock
	clocksMu      sync.Mutex
}

// NewDocsHandler создает новый handler для документов
func NewDocsHandler(logger *slog.Logger, docStorage storage.DocumentStorage, familyStorage storage.FamilyStorage, userStorage storage.UserStorage, hub *watch.Hub) *DocsHandler {
	return &DocsHandler{
		logger:        logger,
		docStorage:    docStorage,
		familyStorage: familyStorage,
		userStorage:   userStorage,
		hub:           hub,
		clocks:        make(map[string]*lww.RevClock),
	}
}

// Collection обрабатывает GET и POST /api/v1/families/{id}/documents
func (h *DocsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if !h.checkFamilyAccess(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		h.sendError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Document обрабатывает GET, PUT и DELETE /api/v1/families/{id}/documents/{docID}
func (h *DocsHandler) Document(w http.ResponseWriter, r *http.Request) {
	if !h.checkFamilyAccess(w, r) {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		h.sendError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreate обрабатывает POST /api/v1/families/{id}/documents
func (h *DocsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := r.PathValue("id")
	userID, _ := GetUserID(ctx)

	var req api.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create document request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCollection(req.Collection); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Data) == 0 {
		h.sendError(w, "data is required", http.StatusBadRequest)
		return
	}

	docID := req.ID
	if docID == "" {
		docID = uuid.New().String()
	} else {
		// Создание с явным ID не должно затирать существующий документ,
		// иначе второй участник молча перепишет чужую запись вместо
		// того, чтобы перейти на обновление. Живой документ дает 409,
		// пересоздание поверх надгробия разрешено.
		existing, err := h.docStorage.GetDocument(ctx, familyID, docID)
		if err != nil && !errors.Is(err, storage.ErrDocNotFound) {
			h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
			h.sendError(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if err == nil && !existing.Deleted {
			h.sendError(w, "document already exists", http.StatusConflict)
			return
		}
	}

	clock, err := h.clock(ctx, familyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to init rev clock", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	doc := &models.Document{
		ID:         docID,
		FamilyID:   familyID,
		Collection: req.Collection,
		ParentID:   req.ParentID,
		Data:       req.Data,
		Rev:        clock.Tick(),
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	saved, err := h.docStorage.SaveDocument(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !saved {
		// Документ с таким ID уже существует в более новой версии
		h.sendError(w, "document already exists", http.StatusConflict)
		return
	}

	h.logger.InfoContext(ctx, "document created",
		slog.String("family_id", familyID),
		slog.String("collection", doc.Collection),
		slog.String("doc_id", doc.ID),
		slog.Int64("rev", doc.Rev))

	h.publish(api.WatchEventPut, doc)

	h.sendJSON(w, toAPIDocument(doc), http.StatusCreated)
}

// handleGet обрабатывает GET /api/v1/families/{id}/documents/{docID}
func (h *DocsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := r.PathValue("id")
	docID := r.PathValue("docID")

	doc, err := h.docStorage.GetDocument(ctx, familyID, docID)
	if err != nil {
		if errors.Is(err, storage.ErrDocNotFound) {
			h.sendError(w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if doc.Deleted {
		h.sendError(w, "document not found", http.StatusNotFound)
		return
	}

	h.sendJSON(w, toAPIDocument(doc), http.StatusOK)
}

// handleList обрабатывает GET /api/v1/families/{id}/documents
// Параметры: collection, parent_id или since (ревизия для догонки)
func (h *DocsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := r.PathValue("id")

	var docs []*models.Document
	var err error

	sinceStr := r.URL.Query().Get("since")
	if sinceStr != "" {
		since, parseErr := strconv.ParseInt(sinceStr, 10, 64)
		if parseErr != nil {
			h.sendError(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		docs, err = h.docStorage.ListDocumentsSince(ctx, familyID, since)
	} else {
		collection := r.URL.Query().Get("collection")
		if validationErr := validation.ValidateCollection(collection); validationErr != nil {
			h.sendError(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		docs, err = h.docStorage.ListDocuments(ctx, familyID, collection, r.URL.Query().Get("parent_id"))
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ListDocumentsResponse{
		Documents: make([]api.Document, 0, len(docs)),
	}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toAPIDocument(doc))
		if doc.Rev > resp.MaxRev {
			resp.MaxRev = doc.Rev
		}
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// handleUpdate обрабатывает PUT /api/v1/families/{id}/documents/{docID}
func (h *DocsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := r.PathValue("id")
	docID := r.PathValue("docID")

	var req api.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update document request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Data) == 0 {
		h.sendError(w, "data is required", http.StatusBadRequest)
		return
	}

	existing, err := h.docStorage.GetDocument(ctx, familyID, docID)
	if err != nil {
		if errors.Is(err, storage.ErrDocNotFound) {
			h.sendError(w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if existing.Deleted {
		// Обновление после удаления игнорируется, удаление побеждает
		h.sendError(w, "document not found", http.StatusNotFound)
		return
	}

	clock, err := h.clock(ctx, familyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to init rev clock", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc := existing.Clone()
	doc.Data = append(json.RawMessage(nil), req.Data...)
	doc.Rev = clock.Tick()
	doc.UpdatedAt = time.Now()

	saved, err := h.docStorage.SaveDocument(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !saved {
		h.sendError(w, "conflicting newer version", http.StatusConflict)
		return
	}

	h.logger.InfoContext(ctx, "document updated",
		slog.String("family_id", familyID),
		slog.String("collection", doc.Collection),
		slog.String("doc_id", doc.ID),
		slog.Int64("rev", doc.Rev))

	if doc.Collection == models.CollectionChores {
		h.awardChorePoints(ctx, existing, doc)
	}

	h.publish(api.WatchEventPut, doc)

	h.sendJSON(w, toAPIDocument(doc), http.StatusOK)
}

// handleDelete обрабатывает DELETE /api/v1/families/{id}/documents/{docID}
// Удаление мягкое: документ превращается в надгробие с новой ревизией
func (h *DocsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	familyID := r.PathValue("id")
	docID := r.PathValue("docID")

	existing, err := h.docStorage.GetDocument(ctx, familyID, docID)
	if err != nil {
		if errors.Is(err, storage.ErrDocNotFound) {
			h.sendError(w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if existing.Deleted {
		// Повторное удаление идемпотентно
		w.WriteHeader(http.StatusNoContent)
		return
	}

	clock, err := h.clock(ctx, familyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to init rev clock", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc := existing.Clone()
	doc.Deleted = true
	doc.Rev = clock.Tick()
	doc.UpdatedAt = time.Now()

	saved, err := h.docStorage.SaveDocument(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save document", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !saved {
		h.sendError(w, "conflicting newer version", http.StatusConflict)
		return
	}

	h.logger.InfoContext(ctx, "document deleted",
		slog.String("family_id", familyID),
		slog.String("collection", doc.Collection),
		slog.String("doc_id", doc.ID),
		slog.Int64("rev", doc.Rev))

	h.publish(api.WatchEventDelete, doc)

	w.WriteHeader(http.StatusNoContent)
}

// awardChorePoints начисляет очки исполнителю при завершении дела
// и снимает их при возврате дела в работу. Ошибка начисления не
// блокирует сохранение документа.
func (h *DocsHandler) awardChorePoints(ctx context.Context, before, after *models.Document) {
	var prev, next models.Chore
	if err := before.DecodeData(&prev); err != nil {
		h.logger.WarnContext(ctx, "failed to decode chore", slog.Any("error", err))
		return
	}
	if err := after.DecodeData(&next); err != nil {
		h.logger.WarnContext(ctx, "failed to decode chore", slog.Any("error", err))
		return
	}

	if next.AssignedTo == "" || next.Points == 0 {
		return
	}

	var delta int
	switch {
	case prev.Status != models.ChoreStatusCompleted && next.Status == models.ChoreStatusCompleted:
		delta = next.Points
	case prev.Status == models.ChoreStatusCompleted && next.Status != models.ChoreStatusCompleted:
		delta = -next.Points
	default:
		return
	}

	if err := h.familyStorage.AddPoints(ctx, after.FamilyID, next.AssignedTo, delta); err != nil {
		h.logger.WarnContext(ctx, "failed to award chore points",
			slog.String("family_id", after.FamilyID),
			slog.String("assigned_to", next.AssignedTo),
			slog.Int("delta", delta),
			slog.Any("error", err))
		return
	}

	h.logger.InfoContext(ctx, "chore points awarded",
		slog.String("family_id", after.FamilyID),
		slog.String("assigned_to", next.AssignedTo),
		slog.Int("delta", delta))
}

// checkFamilyAccess проверяет, что пользователь состоит в семье из пути
func (h *DocsHandler) checkFamilyAccess(w http.ResponseWriter, r *http.Request) bool {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return false
	}

	familyID := r.PathValue("id")
	if familyID == "" {
		h.sendError(w, "family id is required", http.StatusBadRequest)
		return false
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return false
	}

	if user.FamilyID != familyID {
		h.logger.WarnContext(ctx, "family access denied",
			slog.String("user_id", userID),
			slog.String("family_id", familyID))
		h.sendError(w, "forbidden", http.StatusForbidden)
		return false
	}

	return true
}

// clock возвращает часы ревизий семьи, при первом обращении
// инициализируя их максимальной сохраненной ревизией
func (h *DocsHandler) clock(ctx context.Context, familyID string) (*lww.RevClock, error) {
	h.clocksMu.Lock()
	defer h.clocksMu.Unlock()

	if clock, ok := h.clocks[familyID]; ok {
		return clock, nil
	}

	maxRev, err := h.docStorage.MaxRev(ctx, familyID)
	if err != nil {
		return nil, err
	}

	clock := lww.NewRevClock(maxRev)
	h.clocks[familyID] = clock

	return clock, nil
}

func (h *DocsHandler) publish(eventType string, doc *models.Document) {
	h.hub.Publish(doc.FamilyID, api.WatchEvent{
		Type:     eventType,
		Document: toAPIDocument(doc),
	})
}

// toAPIDocument преобразует модель документа в wire-формат
func toAPIDocument(doc *models.Document) api.Document {
	return api.Document{
		ID:         doc.ID,
		FamilyID:   doc.FamilyID,
		Collection: doc.Collection,
		ParentID:   doc.ParentID,
		Data:       doc.Data,
		Rev:        doc.Rev,
		Deleted:    doc.Deleted,
		CreatedBy:  doc.CreatedBy,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func (h *DocsHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *DocsHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
