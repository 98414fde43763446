package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	apiclient "github.com/iudanet/familyhub/internal/client/api"
	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/pkg/api"
)

// collection привязывает оптимистичный список записей к серверной
// коллекции документов. Создание и сохранение идут через Mutator,
// каждый ответ сервера попадает в кеш.
type collection[T any] struct {
	hub      *Hub
	name     string
	parentID string
	mutator  *state.Mutator[T]
}

func newCollection[T any](h *Hub, name, parentID string, less state.LessFunc[T]) *collection[T] {
	return &collection[T]{
		hub:      h,
		name:     name,
		parentID: parentID,
		mutator:  state.NewMutator(h.logger, state.NewListView(less)),
	}
}

func (c *collection[T]) entities() []state.Entity[T] {
	return c.mutator.List().Entities()
}

// add вставляет оптимистичную запись и создает документ на сервере
func (c *collection[T]) add(ctx context.Context, payload T) (string, <-chan error) {
	return c.mutator.Apply(ctx, payload, func(ctx context.Context) (string, int64, func(T) T, error) {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", 0, nil, fmt.Errorf("marshal %s payload: %w", c.name, err)
		}

		doc, err := c.hub.remote.CreateDocument(ctx, c.hub.familyID, api.CreateDocumentRequest{
			Collection: c.name,
			ParentID:   c.parentID,
			Data:       data,
		})
		if err != nil {
			return "", 0, nil, err
		}
		c.hub.cacheDocument(ctx, doc)

		// Сервер возвращает документ целиком, серверные поля
		// приходят в merge вместе с данными.
		merge := func(local T) T {
			var server T
			if err := json.Unmarshal(doc.Data, &server); err != nil {
				return local
			}
			return server
		}
		return doc.ID, doc.Rev, merge, nil
	})
}

// toggle оптимистично применяет flip и сохраняет запись на сервере
func (c *collection[T]) toggle(ctx context.Context, localID string, flip func(*T)) <-chan error {
	return c.mutator.Toggle(ctx, localID, flip, c.saveFunc(localID))
}

// update применяет общее изменение записи с тем же контрактом отката
func (c *collection[T]) update(ctx context.Context, localID string, change func(*T)) <-chan error {
	return c.mutator.Update(ctx, localID, change, c.saveFunc(localID))
}

func (c *collection[T]) saveFunc(localID string) state.SaveFunc[T] {
	return func(ctx context.Context, payload T) (int64, error) {
		entity, ok := c.mutator.List().Get(localID)
		if !ok {
			return 0, fmt.Errorf("%w: %s", state.ErrEntityNotFound, localID)
		}
		if entity.RemoteID == "" {
			return 0, fmt.Errorf("%s entity %s has no server document", c.name, localID)
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("marshal %s payload: %w", c.name, err)
		}

		doc, err := c.hub.remote.UpdateDocument(ctx, c.hub.familyID, entity.RemoteID, data)
		if err != nil {
			return 0, err
		}
		c.hub.cacheDocument(ctx, doc)

		return doc.Rev, nil
	}
}

// remove удаляет подтвержденную запись на сервере и из списка.
// В отличие от мутаций удаление не оптимистично: запись пропадает
// только после ответа сервера.
func (c *collection[T]) remove(ctx context.Context, localID string) error {
	entity, ok := c.mutator.List().Get(localID)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrEntityNotFound, localID)
	}
	if entity.RemoteID == "" || entity.Pending {
		return fmt.Errorf("%s entity %s has an unfinished write", c.name, localID)
	}

	if err := c.hub.remote.DeleteDocument(ctx, c.hub.familyID, entity.RemoteID); err != nil {
		return fmt.Errorf("delete %s document: %w", c.name, err)
	}
	c.mutator.List().Remove(localID)

	return nil
}

// load сводит серверный снимок коллекции со списком. При недоступном
// сервере список строится из локального кеша. Отказ в авторизации
// не маскируется кешем: вызывающий код может обновить токены.
func (c *collection[T]) load(ctx context.Context) error {
	resp, err := c.hub.remote.ListDocuments(ctx, c.hub.familyID, c.name, c.parentID)
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return fmt.Errorf("list %s: %w", c.name, err)
		}
		if cacheErr := c.loadFromCache(ctx); cacheErr != nil {
			return fmt.Errorf("list %s: %w", c.name, err)
		}
		c.hub.logger.WarnContext(ctx, "serving collection from cache",
			slog.String("collection", c.name),
			slog.Any("error", err))
		return nil
	}

	rows := make([]state.RemoteRow[T], 0, len(resp.Documents))
	for i := range resp.Documents {
		doc := &resp.Documents[i]
		c.hub.cacheDocument(ctx, doc)
		if doc.Deleted {
			continue
		}

		var payload T
		if err := json.Unmarshal(doc.Data, &payload); err != nil {
			c.hub.logger.WarnContext(ctx, "skipping undecodable document",
				slog.String("collection", c.name),
				slog.String("doc_id", doc.ID),
				slog.Any("error", err))
			continue
		}
		rows = append(rows, state.RemoteRow[T]{RemoteID: doc.ID, Payload: payload, Rev: doc.Rev})
	}

	c.mutator.List().Merge(rows)
	c.hub.rememberRev(ctx, resp.MaxRev)

	return nil
}

func (c *collection[T]) loadFromCache(ctx context.Context) error {
	docs, err := c.hub.cache.ListDocuments(ctx, c.name, c.parentID)
	if err != nil {
		return err
	}

	rows := make([]state.RemoteRow[T], 0, len(docs))
	for _, doc := range docs {
		var payload T
		if err := doc.DecodeData(&payload); err != nil {
			continue
		}
		rows = append(rows, state.RemoteRow[T]{RemoteID: doc.ID, Payload: payload, Rev: doc.Rev})
	}
	c.mutator.List().Merge(rows)

	return nil
}

// applyEvent применяет событие изменения документа к списку
func (c *collection[T]) applyEvent(doc *api.Document, deleted bool) {
	if doc.Deleted {
		deleted = true
	}

	var payload T
	if !deleted {
		if err := json.Unmarshal(doc.Data, &payload); err != nil {
			c.hub.logger.Warn("skipping undecodable change event",
				slog.String("collection", c.name),
				slog.String("doc_id", doc.ID),
				slog.Any("error", err))
			return
		}
	}

	c.mutator.List().ApplyRemoteRow(state.RemoteRow[T]{
		RemoteID: doc.ID,
		Payload:  payload,
		Rev:      doc.Rev,
	}, deleted)
}
