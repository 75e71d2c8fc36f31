// Package pager delivers callout notifications to on-call teams over
// chat channels.
package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Callout is a single page to an on-call team.
type Callout struct {
	Team        string `json:"team"`
	Summary     string `json:"summary"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Message renders the notification text sent to the paging channels.
func (c Callout) Message() string {
	var b strings.Builder
	b.WriteString("Call Out: " + c.Team + "\n")
	if c.Summary != "" {
		b.WriteString("Incident: " + c.Summary + "\n")
	}
	if c.Severity != "" {
		b.WriteString("Severity: " + c.Severity + "\n")
	}
	if c.Description != "" {
		b.WriteString("\n" + c.Description + "\n")
	}
	return b.String()
}

// Pager sends a callout notification.
type Pager interface {
	Page(ctx context.Context, c Callout) error
	Name() string
}

// Multi fans a callout out to several pagers. Page succeeds when at
// least one backend accepted the message; individual failures are
// logged and collected.
type Multi struct {
	pagers []Pager
	log    *slog.Logger
}

// NewMulti combines pagers into one. A Multi with no backends reports
// an error on every Page call.
func NewMulti(logger *slog.Logger, pagers ...Pager) *Multi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multi{pagers: pagers, log: logger}
}

func (m *Multi) Name() string { return "multi" }

// Backends returns how many pagers are configured.
func (m *Multi) Backends() int { return len(m.pagers) }

func (m *Multi) Page(ctx context.Context, c Callout) error {
	if len(m.pagers) == 0 {
		return errors.New("pager: no backends configured")
	}

	var errs []error
	delivered := 0
	for _, p := range m.pagers {
		if err := p.Page(ctx, c); err != nil {
			m.log.Warn("callout delivery failed", "pager", p.Name(), "team", c.Team, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		delivered++
	}
	if delivered == 0 {
		return errors.Join(errs...)
	}
	return nil
}
