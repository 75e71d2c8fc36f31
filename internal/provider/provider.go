// Package provider wraps the LLM APIs used by the writing-assistance
// and summarization flows.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request is a single completion request. System carries the flow
// instructions, Prompt the user content.
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Provider is the abstraction over LLM APIs.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// ErrOverloaded marks transient capacity failures (HTTP 429/503 or an
// overloaded error body). Callers may retry these; anything else is
// terminal.
var ErrOverloaded = errors.New("provider overloaded")

// Overloaded reports whether err represents a transient overload.
func Overloaded(err error) bool {
	return errors.Is(err, ErrOverloaded)
}

// apiError builds the error for a non-200 API response, tagging
// overload conditions so callers can retry them.
func apiError(name string, status int, body []byte) error {
	msg := fmt.Sprintf("%s: api error (status %d): %s", name, status, string(body))
	if status == 429 || status == 503 || strings.Contains(strings.ToLower(string(body)), "overloaded") {
		return fmt.Errorf("%s: %w", msg, ErrOverloaded)
	}
	return errors.New(msg)
}
