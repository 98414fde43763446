package api

import (
	"encoding/json"
	"time"
)

// Document представляет документ семейного хранилища в API
type Document struct {
	ID         string          `json:"id"`
	FamilyID   string          `json:"family_id"`
	Collection string          `json:"collection"`
	ParentID   string          `json:"parent_id,omitempty"`
	Data       json.RawMessage `json:"data"`
	Rev        int64           `json:"rev"`
	Deleted    bool            `json:"deleted"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateDocumentRequest представляет запрос на создание документа
type CreateDocumentRequest struct {
	Collection string          `json:"collection"`          // имя коллекции
	ParentID   string          `json:"parent_id,omitempty"` // ID родительского документа
	ID         string          `json:"id,omitempty"`        // фиксированный ID (для singleton документов)
	Data       json.RawMessage `json:"data"`                // доменные данные
}

// UpdateDocumentRequest представляет запрос на обновление данных документа.
// Data заменяет доменные данные целиком (last-writer-wins на уровне документа).
type UpdateDocumentRequest struct {
	Data json.RawMessage `json:"data"`
}

// ListDocumentsResponse представляет ответ на запрос списка документов
type ListDocumentsResponse struct {
	Documents []Document `json:"documents"`
	MaxRev    int64      `json:"max_rev"` // максимальная ревизия в ответе
}

// Типы событий watch-канала
const (
	WatchEventPut    = "put"    // документ создан или обновлен
	WatchEventDelete = "delete" // документ помечен удаленным
)

// WatchEvent представляет событие изменения документа,
// доставляемое по WebSocket. Доставка at-least-once, порядок
// гарантируется только в рамках одного документа.
type WatchEvent struct {
	Type     string   `json:"type"` // put или delete
	Document Document `json:"document"`
}
