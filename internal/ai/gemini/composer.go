package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/akarpov/jobtrack/internal/digest"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Composer drafts a digest email through a Gemini generator.
type Composer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewComposer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Composer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Composer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Compose builds the prompt from the frozen digest and returns the model's
// plain-text email draft.
func (c *Composer) Compose(ctx context.Context, dateKey string, entries []digest.Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("digest is empty, nothing to compose")
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal digest payload: %w", err)
	}

	prompt := buildPrompt(dateKey, string(payload))

	c.logger.Debug("gemini compose request",
		zap.String("date", dateKey),
		zap.Int("entries", len(entries)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", truncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.logger.Debug("gemini compose response",
		zap.String("date", dateKey),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", truncateForLog(raw, c.maxLogLen)),
	)

	draft := stripFences(raw)
	if draft == "" {
		return "", fmt.Errorf("gemini returned an empty draft")
	}
	return draft, nil
}

func buildPrompt(dateKey, digestJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Digest for {{DATE}}:\n{{DIGEST_JSON}}\n\nEmail draft:"
	}
	prompt := strings.ReplaceAll(template, "{{DATE}}", dateKey)
	return strings.ReplaceAll(prompt, "{{DIGEST_JSON}}", digestJSON)
}

// stripFences removes a wrapping markdown code fence, which models add
// despite instructions.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func truncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
