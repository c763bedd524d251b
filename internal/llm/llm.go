package llm

import (
	"context"
	"errors"
)

// Client abstracts the external text-completion provider. Implementations
// make exactly one attempt per call; callers treat any error as terminal
// for that request.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm provider not configured")

	// ErrEmptyCompletion indicates the provider answered successfully but
	// returned no usable content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
