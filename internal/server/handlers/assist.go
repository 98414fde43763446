package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/familyhub/internal/inference"
	"github.com/iudanet/familyhub/pkg/api"
)

// AssistHandler проксирует запросы к AI-ассистенту.
// Ответы модели ненадежны: при отказе или мусорном выводе
// клиенту возвращается 502/422, и он деградирует без блокировки.
type AssistHandler struct {
	logger  *slog.Logger
	service inference.Service
}

// NewAssistHandler создает новый handler для AI-ассистента
func NewAssistHandler(logger *slog.Logger, service inference.Service) *AssistHandler {
	return &AssistHandler{
		logger:  logger,
		service: service,
	}
}

// SuggestGroceries обрабатывает POST /api/v1/assist/groceries
// Предлагает список покупок по описанию и/или фото
func (h *AssistHandler) SuggestGroceries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SuggestGroceriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode groceries request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Description) == "" && req.ImageBase64 == "" {
		h.sendError(w, "description or image is required", http.StatusBadRequest)
		return
	}

	items, err := h.service.SuggestGroceries(ctx, req.Description, req.ImageBase64)
	if err != nil {
		h.sendInferenceError(ctx, w, "suggest groceries", err)
		return
	}

	h.logger.InfoContext(ctx, "groceries suggested", slog.Int("items", len(items)))

	h.sendJSON(w, api.SuggestGroceriesResponse{Items: items}, http.StatusOK)
}

// Nutrition обрабатывает POST /api/v1/assist/nutrition
// Оценивает калорийность и белок для товара
func (h *AssistHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.NutritionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode nutrition request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Item) == "" {
		h.sendError(w, "item is required", http.StatusBadRequest)
		return
	}

	nutrition, err := h.service.Nutrition(ctx, req.Item)
	if err != nil {
		h.sendInferenceError(ctx, w, "nutrition", err)
		return
	}

	h.sendJSON(w, nutrition, http.StatusOK)
}

// Chat обрабатывает POST /api/v1/assist/chat
func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode chat request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Messages) == 0 {
		h.sendError(w, "messages are required", http.StatusBadRequest)
		return
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != api.ChatRoleUser || strings.TrimSpace(last.Content) == "" {
		h.sendError(w, "last message must be a non-empty user message", http.StatusBadRequest)
		return
	}

	reply, err := h.service.Chat(ctx, req.Messages)
	if err != nil {
		h.sendInferenceError(ctx, w, "chat", err)
		return
	}

	h.sendJSON(w, api.ChatResponse{Reply: reply}, http.StatusOK)
}

// sendInferenceError переводит ошибки AI-сервиса в HTTP статусы
func (h *AssistHandler) sendInferenceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, inference.ErrMalformed):
		h.logger.WarnContext(ctx, "malformed model output", slog.String("op", op), slog.Any("error", err))
		h.sendError(w, "model returned malformed output", http.StatusUnprocessableEntity)
	case errors.Is(err, inference.ErrUnavailable):
		h.logger.WarnContext(ctx, "model unavailable", slog.String("op", op), slog.Any("error", err))
		h.sendError(w, "assistant is unavailable", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(ctx, "inference failed", slog.String("op", op), slog.Any("error", err))
		h.sendError(w, "assistant is unavailable", http.StatusBadGateway)
	}
}

func (h *AssistHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *AssistHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
