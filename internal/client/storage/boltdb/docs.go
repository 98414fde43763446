package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/familyhub/internal/client/storage"
	"github.com/iudanet/familyhub/internal/models"
)

var lastRevKey = []byte("last_rev")

// SaveDocument сохраняет документ в кэш, если он новее закэшированного.
// Сведение last-writer-wins выполняет индекс: строка не новее известной
// отбрасывается без обращения к диску.
func (s *Storage) SaveDocument(ctx context.Context, doc *models.Document) (bool, error) {
	if s.db == nil {
		return false, storage.ErrStorageClosed
	}

	if !s.index.Apply(doc) {
		return false, nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to marshal document: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}
		if err := bucket.Put([]byte(doc.ID), data); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
		return nil
	})
	if err != nil {
		// Индекс опередил диск, следующее открытие пересоберет его
		// из bucket
		return false, err
	}

	return true, nil
}

// GetDocument возвращает документ по ID, включая удаленные
func (s *Storage) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	doc := s.index.Get(id)
	if doc == nil {
		return nil, storage.ErrDocNotFound
	}

	return doc, nil
}

// ListDocuments возвращает неудаленные документы коллекции
// в порядке создания
func (s *Storage) ListDocuments(ctx context.Context, collection, parentID string) ([]*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	docs := s.index.Collection(collection, parentID)

	// Набор отдает документы в произвольном порядке, сортируем как сервер
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

// SaveLastRev сохраняет ревизию последнего принятого изменения
func (s *Storage) SaveLastRev(ctx context.Context, rev int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(rev))

		if err := bucket.Put(lastRevKey, buf); err != nil {
			return fmt.Errorf("failed to save last rev: %w", err)
		}
		return nil
	})
}

// GetLastRev возвращает сохраненную ревизию, 0 если ее еще нет
func (s *Storage) GetLastRev(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var rev int64

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return nil
		}

		data := bucket.Get(lastRevKey)
		if len(data) != 8 {
			return nil
		}

		rev = int64(binary.BigEndian.Uint64(data))
		return nil
	})
	if err != nil {
		return 0, err
	}

	return rev, nil
}

// Clear удаляет все закэшированные документы и сохраненную ревизию
func (s *Storage) Clear(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDocuments); err != nil {
			return fmt.Errorf("failed to delete documents bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketDocuments); err != nil {
			return fmt.Errorf("failed to recreate documents bucket: %w", err)
		}

		bucket := tx.Bucket(bucketMetadata)
		if bucket != nil {
			if err := bucket.Delete(lastRevKey); err != nil {
				return fmt.Errorf("failed to delete last rev: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.index.Clear()
	return nil
}
