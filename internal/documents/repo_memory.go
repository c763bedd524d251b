package documents

import (
	"context"
	"sync"
	"time"
)

// ReportSummaryFn resolves the report summary for a document, if any. It is
// wired in bootstrap to the reports store so the memory repo can produce the
// same left-join shape as the Postgres repo.
type ReportSummaryFn func(ctx context.Context, documentID int64) (ReportSummary, bool, error)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	Reports ReportSummaryFn

	mu     sync.RWMutex
	docs   []Document
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo(reports ReportSummaryFn) *MemoryRepo {
	return &MemoryRepo{Reports: reports, nextID: 1}
}

// Create stores the document, assigning a sequential id.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = r.nextID
	r.nextID++
	doc.CreatedAt = time.Now().UTC()
	r.docs = append(r.docs, doc)
	return doc, nil
}

// GetByID returns a document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.docs {
		if r.docs[i].ID == id {
			return r.docs[i], nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByOwner returns the owner's documents in creation order with report
// summaries resolved through the configured lookup.
func (r *MemoryRepo) ListByOwner(ctx context.Context, owner string) ([]DocumentWithReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var docs []Document
	for i := range r.docs {
		if r.docs[i].OwnerID == owner {
			docs = append(docs, r.docs[i])
		}
	}
	r.mu.RUnlock()

	// Insertion order is creation order; ids are sequential.
	out := make([]DocumentWithReport, 0, len(docs))
	for _, doc := range docs {
		item := DocumentWithReport{Document: doc}
		if r.Reports != nil {
			summary, ok, err := r.Reports(ctx, doc.ID)
			if err != nil {
				return nil, err
			}
			if ok {
				item.Report = &summary
			}
		}
		out = append(out, item)
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
