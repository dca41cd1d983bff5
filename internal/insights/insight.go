package insights

import (
	"encoding/json"
	"fmt"
	"strings"
)

// InsightCount is the exact number of items a valid generator reply
// must contain.
const InsightCount = 4

// Insight types a generator reply may use.
const (
	TypePositive   = "positive"
	TypeWarning    = "warning"
	TypeSuggestion = "suggestion"
)

// Insight is one generated observation about the user's finances.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
}

func validType(t string) bool {
	switch t {
	case TypePositive, TypeWarning, TypeSuggestion:
		return true
	}
	return false
}

// ParseInsights validates a raw generator reply against the insight
// contract: a JSON array of exactly four items, each with a known
// type, a title and a description. Any malformed item invalidates the
// whole reply; insights are never fabricated locally.
func ParseInsights(raw string) ([]Insight, error) {
	cleaned := stripFences(raw)

	var items []Insight
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, &GenerationError{
			Reason: "reply is not a JSON array of insights",
			Raw:    raw,
			Err:    err,
		}
	}

	if len(items) != InsightCount {
		return nil, &GenerationError{
			Reason: fmt.Sprintf("expected %d insights, got %d", InsightCount, len(items)),
			Raw:    raw,
		}
	}

	for i, item := range items {
		if !validType(item.Type) {
			return nil, &GenerationError{
				Reason: fmt.Sprintf("insight %d has invalid type %q", i, item.Type),
				Raw:    raw,
			}
		}
		if strings.TrimSpace(item.Title) == "" {
			return nil, &GenerationError{
				Reason: fmt.Sprintf("insight %d is missing a title", i),
				Raw:    raw,
			}
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, &GenerationError{
				Reason: fmt.Sprintf("insight %d is missing a description", i),
				Raw:    raw,
			}
		}
	}

	return items, nil
}

// stripFences removes a markdown code fence wrapper, which some models
// add around JSON output even when asked not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
