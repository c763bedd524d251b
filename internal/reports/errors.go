package reports

import "errors"

var (
	// ErrNotFound indicates the report does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a report already exists for the document.
	ErrAlreadyExists = errors.New("report already exists")

	// ErrDocumentNotFound indicates the referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrCompletionFailed wraps completion-provider failures, including
	// timeouts and empty completions.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
