package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/yumeworks/talent-match/internal/ai"
	"github.com/yumeworks/talent-match/internal/matching"
	"github.com/yumeworks/talent-match/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor turns a ranked result set into a short personalized summary. It
// consumes already-computed matches only; scores are never touched.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Summarize(ctx context.Context, features *matching.TalentFeatures, results *matching.MatchResults) (*ai.MatchSummary, error) {
	if features == nil {
		return nil, fmt.Errorf("talent features are required")
	}
	if results == nil || results.Len() == 0 {
		return nil, fmt.Errorf("at least one match result is required")
	}

	talentJSON, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal talent payload: %w", err)
	}

	matchesJSON, err := json.MarshalIndent(results.Items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal matches payload: %w", err)
	}

	prompt := buildPrompt(string(talentJSON), string(matchesJSON))

	a.logger.Debug("gemini summary request",
		zap.Int("matches", results.Len()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini summary response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	summary, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	summary.Raw = raw
	return summary, nil
}

func buildPrompt(talentJSON, matchesJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Talent:\n{{TALENT_JSON}}\n\nMatches:\n{{MATCHES_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{TALENT_JSON}}", talentJSON)
	prompt = strings.ReplaceAll(prompt, "{{MATCHES_JSON}}", matchesJSON)
	return prompt
}

func parseResponse(raw string) (*ai.MatchSummary, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	summary := strings.TrimSpace(data.Summary)
	if summary == "" {
		return nil, fmt.Errorf("gemini response has no summary")
	}

	highlights := make([]string, 0, len(data.Highlights))
	for _, h := range data.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			highlights = append(highlights, h)
		}
	}

	return &ai.MatchSummary{
		Summary:    summary,
		Highlights: highlights,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
