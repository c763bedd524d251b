package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document and returns it with the assigned id and
// server-side creation timestamp.
func (r *PGRepo) Create(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (owner_id, file_name, extracted_text)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctx, query, doc.OwnerID, doc.FileName, doc.Text).
		Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	const query = `
SELECT id, owner_id, file_name, extracted_text, created_at
FROM documents
WHERE id = $1
LIMIT 1`

	var doc Document
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.FileName,
		&doc.Text,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByOwner returns the owner's documents left-joined with their report,
// oldest first. Documents without a report carry a nil summary.
func (r *PGRepo) ListByOwner(ctx context.Context, owner string) ([]DocumentWithReport, error) {
	const query = `
SELECT d.id, d.owner_id, d.file_name, d.extracted_text, d.created_at, r.id, r.created_at
FROM documents d
LEFT JOIN reports r ON r.document_id = d.id
WHERE d.owner_id = $1
ORDER BY d.created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentWithReport
	for rows.Next() {
		var item DocumentWithReport
		var reportID sql.NullInt64
		var reportCreatedAt sql.NullTime
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.FileName,
			&item.Text,
			&item.CreatedAt,
			&reportID,
			&reportCreatedAt,
		); err != nil {
			return nil, err
		}
		if reportID.Valid {
			item.Report = &ReportSummary{
				ID:        reportID.Int64,
				CreatedAt: reportCreatedAt.Time,
			}
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
