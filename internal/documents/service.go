package documents

import (
	"context"
	"errors"
	"fmt"
)

// ExtractFn turns an uploaded payload into plain text, validating the
// declared media type. Injected so handlers can be tested without real PDFs.
type ExtractFn func(data []byte, declaredType string) (string, error)

// Service contains business logic for documents.
type Service struct {
	Repo    Repo
	Extract ExtractFn
}

// Upload validates the payload, extracts its text, and persists the
// document. The owner is always the authenticated identity of the caller.
// Persistence is the commit point: a failed extraction leaves nothing
// observable. Extraction returning empty text still creates the document;
// rejecting scanned-image PDFs outright needs product input.
func (s *Service) Upload(ctx context.Context, owner, fileName, declaredType string, data []byte) (Document, error) {
	if owner == "" {
		return Document{}, fmt.Errorf("%w: owner identity required", ErrInvalidInput)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if s.Extract == nil {
		return Document{}, errors.New("extractor not configured")
	}

	text, err := s.Extract(data, declaredType)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		OwnerID:  owner,
		FileName: fileName,
		Text:     text,
	}
	return s.Repo.Create(ctx, doc)
}

// List returns the owner's documents with report summaries, oldest first.
func (s *Service) List(ctx context.Context, owner string) ([]DocumentWithReport, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner identity required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, owner)
}
