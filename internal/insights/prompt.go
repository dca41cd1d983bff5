package insights

import (
	"encoding/json"
	"fmt"
)

// BuildPrompt renders the generation prompt for a summary. The prompt
// mandates the exact reply shape that ParseInsights enforces, so the
// two must stay in sync.
func BuildPrompt(summary any) (string, error) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	return fmt.Sprintf(`You are a personal finance advisor. Analyze the financial summary below and produce exactly %d insights.

Rules:
- Reply with a JSON array only, no prose and no markdown fences.
- Each item must have: "type" (one of "positive", "warning", "suggestion"), "title" (at most 4 words), "description" (1-2 sentences that reference the exact numbers in the summary), "metric" (a currency or percentage figure drawn from the summary).
- Ground every statement in the numbers provided. Do not invent figures.

Financial summary:
%s`, InsightCount, string(summaryJSON)), nil
}
