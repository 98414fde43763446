package storage

import (
	"context"

	"github.com/iudanet/familyhub/internal/models"
)

//go:generate moq -out cache_mock.go . DocumentCache

// DocumentCache определяет интерфейс локального кэша документов.
// Кэш сводится по принципу последней записи: строка с ревизией не
// новее сохраненной отбрасывается. Кэш обеспечивает чтение без сети
// и хранит ревизию, с которой продолжается watch-подписка.
type DocumentCache interface {
	// SaveDocument сохраняет документ, если он новее закэшированного.
	// Возвращает true, если документ записан.
	SaveDocument(ctx context.Context, doc *models.Document) (bool, error)

	// GetDocument возвращает документ по ID, включая удаленные.
	// Возвращает ErrDocNotFound, если документа нет.
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments возвращает неудаленные документы коллекции,
	// при необходимости отфильтрованные по родителю, в порядке создания
	ListDocuments(ctx context.Context, collection, parentID string) ([]*models.Document, error)

	// SaveLastRev сохраняет ревизию последнего принятого изменения
	SaveLastRev(ctx context.Context, rev int64) error

	// GetLastRev возвращает сохраненную ревизию, 0 если синхронизаций
	// еще не было
	GetLastRev(ctx context.Context) (int64, error)

	// Clear удаляет все закэшированные документы и ревизию.
	// Используется при выходе из семьи и полной пересинхронизации.
	Clear(ctx context.Context) error
}
