package reports

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. Check and insert happen
// under one lock, so the one-report-per-document invariant holds here too.
type MemoryRepo struct {
	mu         sync.RWMutex
	byID       map[int64]Report
	byDocument map[int64]int64 // documentID -> reportID
	nextID     int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:       make(map[int64]Report),
		byDocument: make(map[int64]int64),
		nextID:     1,
	}
}

// Create stores the report, assigning a sequential id. A second report for
// the same document returns ErrAlreadyExists.
func (r *MemoryRepo) Create(ctx context.Context, report Report) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byDocument[report.DocumentID]; exists {
		return Report{}, ErrAlreadyExists
	}
	report.ID = r.nextID
	r.nextID++
	report.CreatedAt = time.Now().UTC()
	r.byID[report.ID] = report
	r.byDocument[report.DocumentID] = report.ID
	return report, nil
}

// GetByID returns a report by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.byID[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	return report, nil
}

// GetByDocument returns the report for a document.
func (r *MemoryRepo) GetByDocument(ctx context.Context, documentID int64) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byDocument[documentID]
	if !ok {
		return Report{}, ErrNotFound
	}
	return r.byID[id], nil
}

var _ Repo = (*MemoryRepo)(nil)
