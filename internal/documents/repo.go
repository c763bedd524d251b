package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	// Create persists the document, assigning id and creation timestamp.
	// Duplicate content is allowed.
	Create(ctx context.Context, doc Document) (Document, error)

	// GetByID fetches a document regardless of owner; authorization is the
	// caller's concern.
	GetByID(ctx context.Context, id int64) (Document, error)

	// ListByOwner returns the owner's documents joined with their report
	// summary, ordered by creation time ascending.
	ListByOwner(ctx context.Context, owner string) ([]DocumentWithReport, error)
}
