package insights

import (
	"errors"
	"testing"
)

const validReply = `[
	{"type":"positive","title":"Strong savings","description":"You saved 48000 this month, a 96.0% savings rate.","metric":"96.0%"},
	{"type":"warning","title":"Food spending high","description":"Food accounts for all 2000 of your expenses.","metric":"2000"},
	{"type":"suggestion","title":"Automate transfers","description":"Move part of the 48000 surplus into savings automatically.","metric":"48000"},
	{"type":"positive","title":"Income stable","description":"Salary of 50000 matches your transaction records.","metric":"50000"}
]`

func TestParseInsightsValid(t *testing.T) {
	got, err := ParseInsights(validReply)
	if err != nil {
		t.Fatalf("ParseInsights: %v", err)
	}
	if len(got) != InsightCount {
		t.Fatalf("got %d insights, want %d", len(got), InsightCount)
	}
	if got[0].Type != TypePositive || got[0].Title != "Strong savings" {
		t.Errorf("first insight = %+v", got[0])
	}
}

func TestParseInsightsStripsFences(t *testing.T) {
	fenced := "```json\n" + validReply + "\n```"
	if _, err := ParseInsights(fenced); err != nil {
		t.Fatalf("ParseInsights with fences: %v", err)
	}
}

func TestParseInsightsRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the market looks great"},
		{"object not array", `{"insights": []}`},
		{"three items", `[
			{"type":"positive","title":"a","description":"d","metric":"1"},
			{"type":"warning","title":"b","description":"d","metric":"2"},
			{"type":"suggestion","title":"c","description":"d","metric":"3"}
		]`},
		{"five items", `[
			{"type":"positive","title":"a","description":"d","metric":"1"},
			{"type":"positive","title":"b","description":"d","metric":"2"},
			{"type":"positive","title":"c","description":"d","metric":"3"},
			{"type":"positive","title":"e","description":"d","metric":"4"},
			{"type":"positive","title":"f","description":"d","metric":"5"}
		]`},
		{"missing title", `[
			{"type":"positive","title":"a","description":"d","metric":"1"},
			{"type":"warning","description":"d","metric":"2"},
			{"type":"suggestion","title":"c","description":"d","metric":"3"},
			{"type":"positive","title":"e","description":"d","metric":"4"}
		]`},
		{"missing description", `[
			{"type":"positive","title":"a","description":"d","metric":"1"},
			{"type":"warning","title":"b","description":"d","metric":"2"},
			{"type":"suggestion","title":"c","metric":"3"},
			{"type":"positive","title":"e","description":"d","metric":"4"}
		]`},
		{"unknown type", `[
			{"type":"celebration","title":"a","description":"d","metric":"1"},
			{"type":"warning","title":"b","description":"d","metric":"2"},
			{"type":"suggestion","title":"c","description":"d","metric":"3"},
			{"type":"positive","title":"e","description":"d","metric":"4"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInsights(tt.raw)
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if genErr.Raw != tt.raw {
				t.Error("GenerationError should carry the raw payload")
			}
		})
	}
}
