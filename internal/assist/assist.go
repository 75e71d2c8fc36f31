// Package assist implements the writing-assistance and summarization
// flows on top of an LLM provider.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/timeliner-io/timeliner/internal/provider"
)

// Service runs the assistance flows. Transient provider overloads are
// retried with exponential backoff (1s, 2s, at most two retries);
// terminal errors propagate immediately.
type Service struct {
	provider provider.Provider
	log      *slog.Logger
}

// New creates an assist service backed by p.
func New(p provider.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: p, log: logger}
}

func (s *Service) complete(ctx context.Context, req provider.Request) (string, error) {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))

	var out string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		text, err := s.provider.Complete(ctx, req)
		if err != nil {
			if provider.Overloaded(err) {
				s.log.Warn("provider overloaded, retrying", "provider", s.provider.Name())
				return retry.RetryableError(err)
			}
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// styleBlock renders the optional knowledge-base and style additions
// shared by the grammar and simplify flows.
func styleBlock(knowledgeBase string) string {
	if knowledgeBase == "" {
		return ""
	}
	return "Use the following sample comms as a reference for tone, style, and terminology:\n---\n" + knowledgeBase + "\n---\n"
}

// CorrectGrammar corrects grammar and style in text. Style and
// knowledgeBase are optional.
func (s *Service) CorrectGrammar(ctx context.Context, text, style, knowledgeBase string) (string, error) {
	system := "You are an expert grammar and style corrector. You will analyze the text provided and suggest corrections to grammar and style.\n" +
		styleBlock(knowledgeBase)
	if style != "" {
		system += "Adopt a " + style + " tone in your correction.\n"
	}
	system += "Respond with the corrected text only."

	out, err := s.complete(ctx, provider.Request{System: system, Prompt: "Text: " + text})
	if err != nil {
		return "", fmt.Errorf("assist: correct grammar: %w", err)
	}
	return out, nil
}

// SimplifyText rewrites text for a non-technical audience.
func (s *Service) SimplifyText(ctx context.Context, text, style, knowledgeBase string) (string, error) {
	system := "You are an expert at simplifying complex text for a non-technical audience.\n" +
		styleBlock(knowledgeBase)
	if style != "" {
		system += "Simplify the following text so that it is easily understood by someone without technical expertise, while maintaining a " + style + " tone.\n"
	} else {
		system += "Please simplify the following text so that it is easily understood by someone without technical expertise.\n"
	}
	system += "Respond with the simplified text only."

	out, err := s.complete(ctx, provider.Request{System: system, Prompt: text})
	if err != nil {
		return "", fmt.Errorf("assist: simplify text: %w", err)
	}
	return out, nil
}

// GenerateComms drafts a stakeholder communication from an incident
// analysis document.
func (s *Service) GenerateComms(ctx context.Context, analysis, knowledgeBase string) (string, error) {
	system := "You are an expert communications manager. Your task is to write a clear and concise communication based on the provided incident analysis summary.\n" +
		styleBlock(knowledgeBase) +
		"Respond with the communication text only."

	prompt := "Please draft a communication based on the following analysis:\n---\n" + analysis + "\n---"

	out, err := s.complete(ctx, provider.Request{System: system, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("assist: generate comms: %w", err)
	}
	return out, nil
}

// parseJSONOutput decodes a model response into v, tolerating a
// markdown code fence around the JSON object.
func parseJSONOutput(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}
	// Fall back to the outermost braces when the model added prose.
	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return fmt.Errorf("no JSON object in response")
		}
		text = text[start : end+1]
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
