package reports

import (
	"context"
	"errors"
	"fmt"

	"cv-report-backend/internal/authz"
	"cv-report-backend/internal/llm"
)

// Service contains business logic for report generation and reads.
type Service struct {
	Repo           Repo
	Docs           DocumentsRepo
	LLM            llm.Client
	PromptMaxChars int
}

// Generate produces the report for a document: load, authorize, check for an
// existing report, complete, persist. The pre-insert existence check is only
// a cheap fast path; the constrained insert is what actually enforces the
// invariant when concurrent requests race past the check. The completion
// call happens outside any store transaction.
func (s *Service) Generate(ctx context.Context, requester string, documentID int64) (Report, error) {
	if documentID <= 0 {
		return Report{}, fmt.Errorf("%w: document id required", ErrInvalidInput)
	}

	doc, err := s.Docs.GetByID(ctx, documentID)
	if err != nil {
		return Report{}, err
	}

	if err := authz.RequireOwner(requester, doc.OwnerID); err != nil {
		return Report{}, err
	}

	if _, err := s.Repo.GetByDocument(ctx, documentID); err == nil {
		return Report{}, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return Report{}, err
	}

	prompt := llm.BuildReportPrompt(doc.Text, s.PromptMaxChars)
	text, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	report := Report{
		DocumentID: documentID,
		OwnerID:    requester,
		Text:       text,
	}
	return s.Repo.Create(ctx, report)
}

// Get returns a report joined with its parent document's text, after the
// ownership check. Reads never mutate the record.
func (s *Service) Get(ctx context.Context, requester string, reportID int64) (ReportWithDocument, error) {
	if reportID <= 0 {
		return ReportWithDocument{}, fmt.Errorf("%w: report id required", ErrInvalidInput)
	}

	report, err := s.Repo.GetByID(ctx, reportID)
	if err != nil {
		return ReportWithDocument{}, err
	}

	if err := authz.RequireOwner(requester, report.OwnerID); err != nil {
		return ReportWithDocument{}, err
	}

	out := ReportWithDocument{Report: report}
	doc, err := s.Docs.GetByID(ctx, report.DocumentID)
	switch {
	case err == nil:
		out.DocumentText = doc.Text
	case errors.Is(err, ErrDocumentNotFound):
		// Referential constraint makes this unreachable in practice; the
		// report is still returned without the document text.
	default:
		return ReportWithDocument{}, err
	}
	return out, nil
}
