// Package ai generates habit suggestions and analyses with a large language
// model, degrading to static answers whenever the model is unavailable.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned for requests without a prompt.
var ErrEmptyPrompt = errors.New("prompt is required")

// Provider is a text completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Request is a single completion request.
type Request struct {
	Prompt      string
	System      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewRequest returns a request with default generation settings.
func NewRequest(prompt string) *Request {
	return &Request{
		Prompt:      prompt,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Validate checks that the request can be sent.
func (r *Request) Validate() error {
	if r.Prompt == "" {
		return ErrEmptyPrompt
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", r.MaxTokens)
	}
	return nil
}

// Response is the text returned by a provider.
type Response struct {
	Content string
	Model   string
}

// StatusError is a non-200 answer from a provider's HTTP API.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
