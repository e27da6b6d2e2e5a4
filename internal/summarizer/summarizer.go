// Package summarizer produces a short editorial summary for one section of
// headlines via a generative-text backend.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/samachar-desk/daily-brief/internal/domain"
	"github.com/samachar-desk/daily-brief/internal/logger"
)

// maxPromptHeadlines caps how many titles are embedded in the prompt.
const maxPromptHeadlines = 15

const promptTemplate = `You are a professional news editor. Summarize the following news headlines from %s - %s into a concise, insightful daily briefing.

Requirements:
- Language: English (Crucial: Translate non-English content to English).
- Format: 3-4 bullet points highlighting the most important stories.
- Style: Professional, objective, and journalistic.
- No introductory text.

Headlines:
%s`

// TextGenerator is the single-call backend contract; tests inject stubs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config carries the backend settings. An empty APIKey disables the
// summarizer entirely; it then performs no network calls.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// Summarizer holds the backend handle for the lifetime of a run. A disabled
// summarizer is a valid no-op value.
type Summarizer struct {
	gen TextGenerator
	log logger.Logger
}

// New builds a summarizer from config. With no credential the returned
// summarizer is a no-op.
func New(cfg Config, log logger.Logger) *Summarizer {
	if log == nil {
		log = logger.NopLogger{}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.WarnObj("no backend credential configured; summarization disabled", "summary_model", cfg.Model)
		return &Summarizer{log: log}
	}
	return &Summarizer{gen: newAnthropicGenerator(cfg), log: log}
}

// NewWithGenerator builds a summarizer around an explicit backend; used by
// tests and callers with custom transports.
func NewWithGenerator(gen TextGenerator, log logger.Logger) *Summarizer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Summarizer{gen: gen, log: log}
}

// Enabled reports whether a backend is configured.
func (s *Summarizer) Enabled() bool { return s != nil && s.gen != nil }

// Summarize makes exactly one backend call for the section and returns the
// trimmed summary text. It returns ("", nil) without any network call when
// the summarizer is disabled or the article list is empty; backend failures
// come back as errors and the caller proceeds without a summary.
func (s *Summarizer) Summarize(ctx context.Context, sourceName, sectionName string, articles []domain.Article) (string, error) {
	if !s.Enabled() || len(articles) == 0 {
		return "", nil
	}

	out, err := s.gen.Generate(ctx, buildPrompt(sourceName, sectionName, articles))
	if err != nil {
		return "", fmt.Errorf("summarize %s - %s: %w", sourceName, sectionName, err)
	}
	return strings.TrimSpace(out), nil
}

// buildPrompt renders the fixed editorial template over the first
// maxPromptHeadlines titles.
func buildPrompt(sourceName, sectionName string, articles []domain.Article) string {
	n := len(articles)
	if n > maxPromptHeadlines {
		n = maxPromptHeadlines
	}
	lines := make([]string, 0, n)
	for _, a := range articles[:n] {
		lines = append(lines, "- "+a.Title)
	}
	return fmt.Sprintf(promptTemplate, sourceName, sectionName, strings.Join(lines, "\n"))
}
