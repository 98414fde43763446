package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/familyhub/internal/server/storage"
	"github.com/iudanet/familyhub/internal/server/watch"
	"github.com/iudanet/familyhub/pkg/api"
)

const (
	watchWriteTimeout = 10 * time.Second
	watchPingInterval = 30 * time.Second
)

// WatchHandler обрабатывает подписку на события изменения документов
type WatchHandler struct {
	logger      *slog.Logger
	docStorage  storage.DocumentStorage
	userStorage storage.UserStorage
	hub         *watch.Hub
	upgrader    websocket.Upgrader
}

// NewWatchHandler создает новый handler для watch-канала
func NewWatchHandler(logger *slog.Logger, docStorage storage.DocumentStorage, userStorage storage.UserStorage, hub *watch.Hub) *WatchHandler {
	return &WatchHandler{
		logger:      logger,
		docStorage:  docStorage,
		userStorage: userStorage,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Watch обрабатывает GET /api/v1/families/{id}/watch
// Поднимает WebSocket и стримит события документов семьи.
// Параметр since=rev воспроизводит пропущенные изменения.
func (h *WatchHandler) Watch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	familyID := r.PathValue("id")

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.FamilyID != familyID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var since int64 = -1
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, err = strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
	}

	// Подписка до replay, чтобы не потерять события между ними.
	// Возможные дубли допустимы: доставка at-least-once.
	sub := h.hub.Subscribe(familyID)
	defer h.hub.Unsubscribe(familyID, sub)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	h.logger.InfoContext(ctx, "watch subscriber connected",
		slog.String("family_id", familyID),
		slog.String("user_id", userID),
		slog.Int64("since", since))

	if since >= 0 {
		if err := h.replay(ctx, conn, familyID, since); err != nil {
			h.logger.WarnContext(ctx, "watch replay failed", slog.Any("error", err))
			return
		}
	}

	// Reader нужен только для обнаружения закрытия соединения
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchPingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				// Отключены хабом как медленный подписчик
				return
			}
			if err := h.writeEvent(conn, event); err != nil {
				h.logger.DebugContext(ctx, "watch write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(watchWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			h.logger.InfoContext(ctx, "watch subscriber disconnected",
				slog.String("family_id", familyID),
				slog.String("user_id", userID))
			return
		}
	}
}

// replay отправляет все изменения с ревизией больше since
func (h *WatchHandler) replay(ctx context.Context, conn *websocket.Conn, familyID string, since int64) error {
	docs, err := h.docStorage.ListDocumentsSince(ctx, familyID, since)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		eventType := api.WatchEventPut
		if doc.Deleted {
			eventType = api.WatchEventDelete
		}
		event := api.WatchEvent{
			Type:     eventType,
			Document: toAPIDocument(doc),
		}
		if err := h.writeEvent(conn, event); err != nil {
			return err
		}
	}

	return nil
}

func (h *WatchHandler) writeEvent(conn *websocket.Conn, event api.WatchEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}
