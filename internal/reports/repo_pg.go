package reports

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a report. The unique index on document_id makes the insert
// the atomic guard for the one-report-per-document invariant; a violation is
// mapped to ErrAlreadyExists.
func (r *PGRepo) Create(ctx context.Context, report Report) (Report, error) {
	const query = `
INSERT INTO reports (document_id, owner_id, report_text)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctx, query, report.DocumentID, report.OwnerID, report.Text).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Report{}, ErrAlreadyExists
		}
		return Report{}, err
	}
	return report, nil
}

// GetByID fetches a report by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Report, error) {
	const query = `
SELECT id, document_id, owner_id, report_text, created_at
FROM reports
WHERE id = $1
LIMIT 1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByDocument fetches the report for a document.
func (r *PGRepo) GetByDocument(ctx context.Context, documentID int64) (Report, error) {
	const query = `
SELECT id, document_id, owner_id, report_text, created_at
FROM reports
WHERE document_id = $1
LIMIT 1`

	return r.scanOne(r.DB.QueryRowContext(ctx, query, documentID))
}

func (r *PGRepo) scanOne(row *sql.Row) (Report, error) {
	var report Report
	err := row.Scan(
		&report.ID,
		&report.DocumentID,
		&report.OwnerID,
		&report.Text,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	return report, nil
}

var _ Repo = (*PGRepo)(nil)
