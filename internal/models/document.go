package models

import (
	"encoding/json"
	"time"
)

// Имена коллекций документов внутри семьи
const (
	CollectionChores          = "chores"
	CollectionEvents          = "events"
	CollectionGroceryLists    = "grocery_lists"
	CollectionGroceryItems    = "grocery_items"
	CollectionMemoirs         = "memoirs"
	CollectionMemoirQuestions = "memoir_questions"
	CollectionMemoirAnswers   = "memoir_answers"
	CollectionBoard           = "board"
)

// BoardDocID фиксированный ID единственного документа доски объявлений семьи
const BoardDocID = "sticky-note"

// Document представляет документ в хранилище семьи.
// Это универсальный конверт: доменные данные лежат в Data как JSON,
// а конверт несет все, что нужно для синхронизации и разрешения конфликтов.
type Document struct {
	ID         string          `json:"id"`          // UUID документа
	FamilyID   string          `json:"family_id"`   // ID семьи-владельца
	Collection string          `json:"collection"`  // имя коллекции (chores, events, ...)
	ParentID   string          `json:"parent_id"`   // ID родительского документа (items -> list)
	Data       json.RawMessage `json:"data"`        // доменные данные документа
	Rev        int64           `json:"rev"`         // монотонная ревизия в рамках семьи
	Deleted    bool            `json:"deleted"`     // флаг soft delete
	CreatedBy  string          `json:"created_by"`  // ID пользователя-автора
	CreatedAt  time.Time       `json:"created_at"`  // время создания
	UpdatedAt  time.Time       `json:"updated_at"`  // время последнего обновления
}

// IsNewerThan сравнивает две версии документа по правилу LWW:
// 1. Сначала сравнивается Rev (большая выигрывает)
// 2. При равных Rev сравнивается UpdatedAt
// 3. При полном равенстве сравниваются ID (для детерминизма)
// Возвращает true, если текущая версия новее, чем other.
func (d *Document) IsNewerThan(other *Document) bool {
	if d.Rev != other.Rev {
		return d.Rev > other.Rev
	}
	if !d.UpdatedAt.Equal(other.UpdatedAt) {
		return d.UpdatedAt.After(other.UpdatedAt)
	}
	return d.ID > other.ID
}

// Clone создает глубокую копию документа
func (d *Document) Clone() *Document {
	data := make(json.RawMessage, len(d.Data))
	copy(data, d.Data)

	return &Document{
		ID:         d.ID,
		FamilyID:   d.FamilyID,
		Collection: d.Collection,
		ParentID:   d.ParentID,
		Data:       data,
		Rev:        d.Rev,
		Deleted:    d.Deleted,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// DecodeData десериализует доменные данные документа в v
func (d *Document) DecodeData(v any) error {
	return json.Unmarshal(d.Data, v)
}
