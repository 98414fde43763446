package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/familyhub/internal/models"
	"github.com/iudanet/familyhub/internal/server/storage"
)

// SaveDocument сохраняет документ с LWW-разрешением конфликтов.
// Возвращает true, если документ записан, и false, если отклонен
// как более старый, чем существующая версия.
func (s *Storage) SaveDocument(ctx context.Context, doc *models.Document) (bool, error) {
	existing, err := s.GetDocument(ctx, doc.FamilyID, doc.ID)
	if err != nil && !errors.Is(err, storage.ErrDocNotFound) {
		return false, err
	}

	if existing != nil && !doc.IsNewerThan(existing) {
		return false, nil
	}

	query := `
		INSERT INTO documents (family_id, id, collection, parent_id, data, rev, deleted, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(family_id, id) DO UPDATE SET
			collection = excluded.collection,
			parent_id = excluded.parent_id,
			data = excluded.data,
			rev = excluded.rev,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		doc.FamilyID,
		doc.ID,
		doc.Collection,
		doc.ParentID,
		[]byte(doc.Data),
		doc.Rev,
		boolToInt(doc.Deleted),
		doc.CreatedBy,
		doc.CreatedAt.Unix(),
		doc.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save document: %w", err)
	}

	return true, nil
}

// GetDocument возвращает документ по ID, включая помеченные удаленными.
// Возвращает ErrDocNotFound, если документа нет.
func (s *Storage) GetDocument(ctx context.Context, familyID, docID string) (*models.Document, error) {
	query := `
		SELECT family_id, id, collection, parent_id, data, rev, deleted, created_by, created_at, updated_at
		FROM documents
		WHERE family_id = ? AND id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, familyID, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("rows iteration error: %w", err)
		}
		return nil, storage.ErrDocNotFound
	}

	return scanDocument(rows)
}

// ListDocuments возвращает живые документы коллекции.
// parentID пустой означает без фильтра по родителю.
func (s *Storage) ListDocuments(ctx context.Context, familyID, collection, parentID string) ([]*models.Document, error) {
	query := `
		SELECT family_id, id, collection, parent_id, data, rev, deleted, created_by, created_at, updated_at
		FROM documents
		WHERE family_id = ? AND collection = ? AND deleted = 0
	`
	args := []any{familyID, collection}

	if parentID != "" {
		query += ` AND parent_id = ?`
		args = append(args, parentID)
	}

	query += ` ORDER BY created_at ASC, id ASC`

	return s.queryDocuments(ctx, query, args...)
}

// ListDocumentsSince возвращает все документы с ревизией больше since,
// включая удаленные, для догонки наблюдателей.
func (s *Storage) ListDocumentsSince(ctx context.Context, familyID string, since int64) ([]*models.Document, error) {
	query := `
		SELECT family_id, id, collection, parent_id, data, rev, deleted, created_by, created_at, updated_at
		FROM documents
		WHERE family_id = ? AND rev > ?
		ORDER BY rev ASC
	`

	return s.queryDocuments(ctx, query, familyID, since)
}

// MaxRev возвращает максимальную ревизию семьи (0, если документов нет)
func (s *Storage) MaxRev(ctx context.Context, familyID string) (int64, error) {
	query := `SELECT COALESCE(MAX(rev), 0) FROM documents WHERE family_id = ?`

	var maxRev int64
	if err := s.db.QueryRowContext(ctx, query, familyID).Scan(&maxRev); err != nil {
		return 0, fmt.Errorf("failed to get max rev: %w", err)
	}

	return maxRev, nil
}

func (s *Storage) queryDocuments(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := make([]*models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// scanDocument сканирует одну строку documents
func scanDocument(rows *sql.Rows) (*models.Document, error) {
	doc := &models.Document{}
	var data []byte
	var deleted int
	var createdAt, updatedAt int64

	err := rows.Scan(
		&doc.FamilyID,
		&doc.ID,
		&doc.Collection,
		&doc.ParentID,
		&data,
		&doc.Rev,
		&deleted,
		&doc.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.Data = data
	doc.Deleted = intToBool(deleted)
	doc.CreatedAt = unixToTime(createdAt)
	doc.UpdatedAt = unixNanoToTime(updatedAt)

	return doc, nil
}
