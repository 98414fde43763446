package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	apiclient "github.com/iudanet/familyhub/internal/client/api"
	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/pkg/api"
)

// Board возвращает текущий текст заметки на доске объявлений
func (h *Hub) Board() string {
	return h.board.Value()
}

// EditBoard принимает новое значение заметки. Значение видно сразу,
// сохранение уходит на сервер после паузы в наборе; серия правок
// приводит к одному сохранению с последним значением.
func (h *Hub) EditBoard(value string) {
	h.board.Edit(value)
}

// BoardPending сообщает, есть ли несохраненные правки доски
func (h *Hub) BoardPending() bool {
	return h.board.Pending()
}

// FlushBoard немедленно отправляет несохраненные правки доски
func (h *Hub) FlushBoard() {
	h.board.Flush()
}

// saveBoard сохраняет заметку доски на сервере. Документ доски один
// на семью с фиксированным ID; если его еще нет, он создается.
func (h *Hub) saveBoard(ctx context.Context, value string) error {
	data, err := json.Marshal(models.BoardNote{Message: value, Author: h.author})
	if err != nil {
		return fmt.Errorf("marshal board note: %w", err)
	}

	h.boardMu.Lock()
	exists := h.boardExists
	h.boardMu.Unlock()

	if !exists {
		doc, createErr := h.remote.CreateDocument(ctx, h.familyID, api.CreateDocumentRequest{
			Collection: models.CollectionBoard,
			ID:         models.BoardDocID,
			Data:       data,
		})
		if createErr == nil {
			h.markBoardExists()
			h.cacheDocument(ctx, doc)
			return nil
		}
		// Доску мог уже создать другой член семьи, пробуем обновить
		h.logger.DebugContext(ctx, "board create failed, trying update",
			slog.Any("error", createErr))
	}

	doc, err := h.remote.UpdateDocument(ctx, h.familyID, models.BoardDocID, data)
	if err != nil {
		return fmt.Errorf("save board note: %w", err)
	}
	h.markBoardExists()
	h.cacheDocument(ctx, doc)

	return nil
}

// loadBoard подтягивает заметку доски с сервера, при недоступном
// сервере из кеша. Отсутствие документа доски не ошибка.
func (h *Hub) loadBoard(ctx context.Context) error {
	resp, err := h.remote.ListDocuments(ctx, h.familyID, models.CollectionBoard, "")
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return fmt.Errorf("load board: %w", err)
		}
		cached, cacheErr := h.cache.GetDocument(ctx, models.BoardDocID)
		if cacheErr != nil {
			if errors.Is(cacheErr, storage.ErrDocNotFound) {
				return nil
			}
			return fmt.Errorf("load board: %w", err)
		}
		if !cached.Deleted {
			var note models.BoardNote
			if decErr := cached.DecodeData(&note); decErr == nil {
				h.board.ApplyRemote(note.Message, cached.UpdatedAt)
				h.markBoardExists()
			}
		}
		return nil
	}

	for i := range resp.Documents {
		doc := &resp.Documents[i]
		h.cacheDocument(ctx, doc)
		if doc.ID != models.BoardDocID || doc.Deleted {
			continue
		}

		var note models.BoardNote
		if err := json.Unmarshal(doc.Data, &note); err != nil {
			h.logger.WarnContext(ctx, "skipping undecodable board note",
				slog.Any("error", err))
			continue
		}
		h.board.ApplyRemote(note.Message, doc.UpdatedAt)
		h.markBoardExists()
	}

	return nil
}

// applyBoardEvent применяет изменение документа доски из watch-канала.
// Заметка с меткой времени старше выданного локального сохранения
// отбрасывается, как и любая заметка при несохраненных правках.
func (h *Hub) applyBoardEvent(doc *api.Document, deleted bool) {
	if doc.ID != models.BoardDocID {
		return
	}
	if deleted || doc.Deleted {
		h.board.ApplyRemote("", doc.UpdatedAt)
		return
	}

	var note models.BoardNote
	if err := json.Unmarshal(doc.Data, &note); err != nil {
		h.logger.Warn("skipping undecodable board note", slog.Any("error", err))
		return
	}

	h.markBoardExists()
	h.board.ApplyRemote(note.Message, doc.UpdatedAt)
}

func (h *Hub) markBoardExists() {
	h.boardMu.Lock()
	h.boardExists = true
	h.boardMu.Unlock()
}
