package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/career-guide/internal/career"
)

// parseInsights decodes the AI answer. Fields the answer lacks stay empty.
func parseInsights(raw string) (career.Insights, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return career.Insights{}, fmt.Errorf("parse insight response: %w", err)
	}
	if data == nil {
		return career.Insights{}, errors.New("parse insight response: null object")
	}

	return career.Insights{
		WhyItMatches:            coerceString(data["whyItMatches"]),
		PersonalizedDescription: coerceString(data["personalizedDescription"]),
		KeyStrengths:            coerceStrings(data["keyStrengths"]),
		DevelopmentAreas:        coerceStrings(data["developmentAreas"]),
		NextSteps:               coerceStrings(data["nextSteps"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```JSON")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceStrings accepts a list of values or a single string.
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
