package reports

import "context"

// Repo defines persistence operations for reports.
type Repo interface {
	// Create persists the report, assigning id and creation timestamp. The
	// insert is constrained on document id: a second report for the same
	// document fails with ErrAlreadyExists, also under concurrent calls.
	Create(ctx context.Context, report Report) (Report, error)

	// GetByID fetches a report regardless of owner; authorization is the
	// caller's concern.
	GetByID(ctx context.Context, id int64) (Report, error)

	// GetByDocument fetches the report for a document, or ErrNotFound.
	GetByDocument(ctx context.Context, documentID int64) (Report, error)
}

// DocumentRecord is the slice of a document this package needs: ownership
// for the guard and text for the prompt.
type DocumentRecord struct {
	ID      int64
	OwnerID string
	Text    string
}

// DocumentsRepo resolves parent documents. Implementations return
// ErrDocumentNotFound for absent ids; an adapter over the documents store is
// wired in bootstrap.
type DocumentsRepo interface {
	GetByID(ctx context.Context, id int64) (DocumentRecord, error)
}
