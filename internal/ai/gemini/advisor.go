package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Advisor {
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

type categoryLevel struct {
	Category string `json:"category"`
	Level    int    `json:"level"`
	Minimum  int    `json:"minimum"`
	Required *int   `json:"required,omitempty"`
}

type topMatch struct {
	Company  string  `json:"company"`
	Role     string  `json:"role"`
	Distance float64 `json:"distance"`
}

type profile struct {
	Skills          []categoryLevel `json:"skills"`
	SuggestedSkills []string        `json:"suggested_skills"`
	TopMatch        *topMatch       `json:"top_match,omitempty"`
}

func (a *Advisor) Advise(ctx context.Context, req *ai.Request) (*ai.Advice, error) {
	if req == nil {
		return nil, errors.New("advice request is required")
	}

	payload, err := buildProfile(req)
	if err != nil {
		return nil, err
	}

	profileJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	prompt := buildPrompt(string(profileJSON))

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	advice, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	advice.Raw = raw
	return advice, nil
}

func buildProfile(req *ai.Request) (*profile, error) {
	if err := req.Student.Validate(req.Categories.Len()); err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}

	p := &profile{SuggestedSkills: append([]string{}, req.Suggestions...)}
	for idx, category := range req.Categories {
		minimum, err := req.Thresholds.Get(category)
		if err != nil {
			return nil, err
		}

		level := categoryLevel{Category: category, Level: req.Student[idx], Minimum: minimum}
		if idx < len(req.TopRequirements) {
			required := req.TopRequirements[idx]
			level.Required = &required
		}
		p.Skills = append(p.Skills, level)
	}

	if req.Top != nil {
		p.TopMatch = &topMatch{Company: req.Top.Company, Role: req.Top.Role, Distance: req.Top.Distance}
	}

	return p, nil
}

func buildPrompt(profileJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Profile:\n{{PROFILE_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{PROFILE_JSON}}", profileJSON)
}

func parseResponse(raw string) (*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	advice := &ai.Advice{
		Summary: coerceString(data["summary"]),
		Steps:   coerceStrings(data["steps"]),
	}
	if advice.Summary == "" && len(advice.Steps) == 0 {
		return nil, errors.New("gemini response has neither summary nor steps")
	}

	return advice, nil
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

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
