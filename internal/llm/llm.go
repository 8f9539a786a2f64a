package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts the generation service used for resume analysis.
type Client interface {
	// AnalyzeResume returns the raw text of the first candidate. The text is
	// expected to contain a JSON object but may wrap it in prose or code fences.
	AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error)
}

// AnalyzeInput captures the inputs needed for resume analysis.
type AnalyzeInput struct {
	ResumeText string
	FileName   string
}

var (
	// ErrRateLimited marks a single throttled response.
	ErrRateLimited = errors.New("llm rate limited")
	// ErrRateLimitExhausted is returned once every throttling retry has been used.
	ErrRateLimitExhausted = errors.New("llm rate limit retries exhausted")
	// ErrNetwork wraps transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("llm request failed")
	// ErrEmptyResponse is returned when the envelope has no candidate text.
	ErrEmptyResponse = errors.New("invalid response from llm: no candidate text")
	// ErrNotConfigured is returned by PlaceholderClient.
	ErrNotConfigured = errors.New("llm client not configured")
)

// StatusError reports a non-success HTTP status from the generation endpoint.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("llm http status %d %s", e.Code, e.Status)
	}
	return fmt.Sprintf("llm http status %d %s: %s", e.Code, e.Status, e.Body)
}

// Unwrap lets callers match any StatusError with errors.Is(err, ErrNetwork).
func (e *StatusError) Unwrap() error { return ErrNetwork }

// PlaceholderClient is used when no API key is configured.
type PlaceholderClient struct{}

// AnalyzeResume returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeResume(ctx context.Context, input AnalyzeInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
