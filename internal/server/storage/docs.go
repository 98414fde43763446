package storage

import (
	"context"

	"github.com/iudanet/familyhub/internal/models"
)

// DocumentStorage defines interface for family document persistence.
// Writes follow LWW: a version loses to an already stored newer version.
type DocumentStorage interface {
	// SaveDocument creates or updates a document.
	// Returns true if the version was stored, false if the existing
	// version is newer (LWW conflict resolved in favor of storage).
	SaveDocument(ctx context.Context, doc *models.Document) (bool, error)

	// GetDocument retrieves a single document by family and ID,
	// including tombstones of deleted documents.
	// Returns ErrDocNotFound if document was never stored
	GetDocument(ctx context.Context, familyID, docID string) (*models.Document, error)

	// ListDocuments retrieves non-deleted documents of a collection,
	// optionally filtered by parentID (empty string = no filter).
	// Returns empty slice if none found
	ListDocuments(ctx context.Context, familyID, collection, parentID string) ([]*models.Document, error)

	// ListDocumentsSince retrieves all documents (including deleted) of a
	// family with rev greater than since. Used for watch replay.
	ListDocumentsSince(ctx context.Context, familyID string, since int64) ([]*models.Document, error)

	// MaxRev returns the highest revision stored for a family (0 if none)
	MaxRev(ctx context.Context, familyID string) (int64, error)
}
