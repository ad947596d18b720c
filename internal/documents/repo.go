package documents

import "context"

// Repo defines persistence operations for resume documents.
type Repo interface {
	// Create records the document and marks it as the user's current
	// resume, demoting any previous current document.
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	GetCurrentByUser(ctx context.Context, userID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
}
