// Package hub реализует доменный слой клиента: домашние дела,
// календарь, списки покупок, мемуары, доска объявлений и чат с
// ассистентом поверх оптимистичного ядра состояния, серверного
// API и локального кеша документов.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/familyhub/internal/client/state"
	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/pkg/api"
)

//go:generate moq -out remote_mock.go . Remote

// Remote описывает серверные операции, нужные доменному слою.
// Реализуется клиентом internal/client/api.
type Remote interface {
	CreateDocument(ctx context.Context, familyID string, req api.CreateDocumentRequest) (*api.Document, error)
	UpdateDocument(ctx context.Context, familyID, docID string, data json.RawMessage) (*api.Document, error)
	DeleteDocument(ctx context.Context, familyID, docID string) error
	ListDocuments(ctx context.Context, familyID, collection, parentID string) (*api.ListDocumentsResponse, error)
	ListDocumentsSince(ctx context.Context, familyID string, since int64) (*api.ListDocumentsResponse, error)
	SuggestGroceries(ctx context.Context, req api.SuggestGroceriesRequest) (*api.SuggestGroceriesResponse, error)
	Nutrition(ctx context.Context, item string) (*api.NutritionResponse, error)
	Chat(ctx context.Context, messages []api.ChatMessage) (*api.ChatResponse, error)
}

// Hub связывает оптимистичные списки доменных сущностей с сервером
// и кешем. Каждая коллекция живет в своем ListView со своей политикой
// сортировки: позиции покупок показываются некупленными вперед,
// события по возрастанию даты, дела и мемуары в порядке добавления.
type Hub struct {
	logger   *slog.Logger
	remote   Remote
	cache    storage.DocumentCache
	familyID string
	author   string // отображаемое имя для заметок на доске

	chores  *collection[models.Chore]
	events  *collection[models.Event]
	lists   *collection[models.GroceryList]
	memoirs *collection[models.Memoir]

	mu        sync.Mutex
	items     map[string]*collection[models.GroceryItem]    // по ID списка покупок
	questions map[string]*collection[models.MemoirQuestion] // по ID мемуара
	answers   map[string]*collection[models.MemoirAnswer]   // по ID вопроса
	lastRev   int64

	board       *state.Field
	boardMu     sync.Mutex
	boardExists bool
}

// New создает Hub для семьи. author попадает в поле Author заметок
// на доске объявлений.
func New(logger *slog.Logger, remote Remote, cache storage.DocumentCache, familyID, author string) *Hub {
	h := &Hub{
		logger:    logger,
		remote:    remote,
		cache:     cache,
		familyID:  familyID,
		author:    author,
		items:     make(map[string]*collection[models.GroceryItem]),
		questions: make(map[string]*collection[models.MemoirQuestion]),
		answers:   make(map[string]*collection[models.MemoirAnswer]),
	}

	h.chores = newCollection[models.Chore](h, models.CollectionChores, "", nil)
	h.events = newCollection(h, models.CollectionEvents, "", eventsByDate)
	h.lists = newCollection[models.GroceryList](h, models.CollectionGroceryLists, "", nil)
	h.memoirs = newCollection[models.Memoir](h, models.CollectionMemoirs, "", nil)
	h.board = state.NewField(logger, state.DefaultQuietPeriod, h.saveBoard)

	return h
}

// uncheckedFirst показывает некупленные позиции раньше купленных,
// внутри групп порядок вставки сохраняется.
func uncheckedFirst(a, b *state.Entity[models.GroceryItem]) bool {
	return !a.Payload.Checked && b.Payload.Checked
}

// eventsByDate сортирует события календаря по возрастанию даты
func eventsByDate(a, b *state.Entity[models.Event]) bool {
	return a.Payload.Date.Before(b.Payload.Date)
}

// Load загружает верхнеуровневые коллекции семьи и доску объявлений.
// Позиции списков покупок и вопросы мемуаров подгружаются отдельно
// через OpenGroceryList и OpenMemoir.
func (h *Hub) Load(ctx context.Context) error {
	if rev, err := h.cache.GetLastRev(ctx); err == nil {
		h.mu.Lock()
		h.lastRev = rev
		h.mu.Unlock()
	}

	for _, c := range []interface{ load(context.Context) error }{
		h.chores, h.events, h.lists, h.memoirs,
	} {
		if err := c.load(ctx); err != nil {
			return err
		}
	}

	return h.loadBoard(ctx)
}

// Refresh дотягивает с сервера документы, измененные после последней
// известной ревизии, и применяет их к спискам. Используется при
// переподключении, когда watch-канал мог пропустить события.
func (h *Hub) Refresh(ctx context.Context) error {
	h.mu.Lock()
	since := h.lastRev
	h.mu.Unlock()

	resp, err := h.remote.ListDocumentsSince(ctx, h.familyID, since)
	if err != nil {
		return fmt.Errorf("refresh documents: %w", err)
	}

	for i := range resp.Documents {
		doc := &resp.Documents[i]
		h.cacheDocument(ctx, doc)
		h.routeDocument(doc, doc.Deleted)
	}
	h.rememberRev(ctx, resp.MaxRev)

	return nil
}

// ApplyWatchEvent применяет событие watch-канала к кешу и спискам
func (h *Hub) ApplyWatchEvent(ctx context.Context, event *api.WatchEvent) {
	doc := event.Document
	h.cacheDocument(ctx, &doc)
	h.routeDocument(&doc, event.Type == api.WatchEventDelete)
}

// LastRev возвращает последнюю известную ревизию документов семьи
func (h *Hub) LastRev() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastRev
}

// Chat отправляет историю диалога ассистенту и возвращает ответ
func (h *Hub) Chat(ctx context.Context, messages []api.ChatMessage) (string, error) {
	resp, err := h.remote.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	return resp.Reply, nil
}

// Close останавливает отложенные сохранения доски
func (h *Hub) Close() {
	h.board.Close()
}

// routeDocument направляет измененный документ в нужный список.
// Коллекции с родителем (позиции, вопросы, ответы) обновляются
// только если уже открыты, кеш при этом обновлен в любом случае.
func (h *Hub) routeDocument(doc *api.Document, deleted bool) {
	switch doc.Collection {
	case models.CollectionChores:
		h.chores.applyEvent(doc, deleted)
	case models.CollectionEvents:
		h.events.applyEvent(doc, deleted)
	case models.CollectionGroceryLists:
		h.lists.applyEvent(doc, deleted)
	case models.CollectionGroceryItems:
		if c := opened(h, h.items, doc.ParentID); c != nil {
			c.applyEvent(doc, deleted)
		}
	case models.CollectionMemoirs:
		h.memoirs.applyEvent(doc, deleted)
	case models.CollectionMemoirQuestions:
		if c := opened(h, h.questions, doc.ParentID); c != nil {
			c.applyEvent(doc, deleted)
		}
	case models.CollectionMemoirAnswers:
		if c := opened(h, h.answers, doc.ParentID); c != nil {
			c.applyEvent(doc, deleted)
		}
	case models.CollectionBoard:
		h.applyBoardEvent(doc, deleted)
	default:
		h.logger.Warn("unknown collection in change event",
			slog.String("collection", doc.Collection),
			slog.String("doc_id", doc.ID))
	}
}

// opened возвращает дочернюю коллекцию, если она уже открыта
func opened[T any](h *Hub, m map[string]*collection[T], parentID string) *collection[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return m[parentID]
}

// cacheDocument записывает документ в локальный кеш и продвигает
// последнюю известную ревизию. Ошибка кеша не блокирует работу.
func (h *Hub) cacheDocument(ctx context.Context, doc *api.Document) {
	cached := &models.Document{
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

	if _, err := h.cache.SaveDocument(ctx, cached); err != nil {
		h.logger.WarnContext(ctx, "document cache write failed",
			slog.String("doc_id", doc.ID),
			slog.Any("error", err))
		return
	}
	h.rememberRev(ctx, doc.Rev)
}

func (h *Hub) rememberRev(ctx context.Context, rev int64) {
	h.mu.Lock()
	if rev <= h.lastRev {
		h.mu.Unlock()
		return
	}
	h.lastRev = rev
	h.mu.Unlock()

	if err := h.cache.SaveLastRev(ctx, rev); err != nil {
		h.logger.WarnContext(ctx, "last revision cache write failed",
			slog.Int64("rev", rev),
			slog.Any("error", err))
	}
}
