package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/familyhub/internal/lww"
	"github.com/iudanet/familyhub/internal/models"
)

var (
	// Имена BoltDB buckets
	bucketSession   = []byte("session")
	bucketDocuments = []byte("documents")
	bucketMetadata  = []byte("metadata")
)

// Storage представляет клиентское хранилище на BoltDB:
// сессия пользователя и локальный кэш документов семьи.
// Документы индексируются в памяти LWW-набором, bucket хранит
// их же персистентно.
type Storage struct {
	db    *bbolt.DB
	index *lww.Set
}

// New создает хранилище BoltDB.
// dbPath задает путь к файлу базы данных.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, index: lww.NewSet()}

	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := storage.loadIndex(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load document index: %w", err)
	}

	return storage, nil
}

// Close закрывает базу данных
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets, если их еще нет
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketDocuments); err != nil {
			return fmt.Errorf("failed to create documents bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMetadata); err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}
		return nil
	})
}

// loadIndex наполняет LWW-набор сохраненными документами
func (s *Storage) loadIndex() error {
	var docs []*models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			doc := &models.Document{}
			if err := json.Unmarshal(v, doc); err != nil {
				return fmt.Errorf("failed to unmarshal document %s: %w", string(k), err)
			}
			docs = append(docs, doc)
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.index.Merge(docs)
	return nil
}
