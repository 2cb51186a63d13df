package llm

import (
	"errors"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"executive_summary":"test"}`,
			want:  `{"executive_summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"executive_summary\":\"test\"}\n```",
			want:  `{"executive_summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"executive_summary\":\"test\"}\n```",
			want:  `{"executive_summary":"test"}`,
		},
		{
			name:  "strips surrounding prose",
			input: "Here is your report:\n{\"executive_summary\":\"test\"}\nHope it helps!",
			want:  `{"executive_summary":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInsight_DefaultsMissingSentiment(t *testing.T) {
	raw := `{"executive_summary":"Quiet market.","action_plan":["step"]}`

	insight, err := ParseInsight(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insight.Sentiment.Positive != neutralSentiment ||
		insight.Sentiment.Neutral != neutralSentiment ||
		insight.Sentiment.Negative != neutralSentiment {
		t.Errorf("expected all axes defaulted to %d, got %+v", neutralSentiment, insight.Sentiment)
	}
}

func TestParseInsight_DefaultsPartialSentiment(t *testing.T) {
	raw := `{"sentiment_analysis":{"Positive":70}}`

	insight, err := ParseInsight(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insight.Sentiment.Positive != 70 {
		t.Errorf("expected Positive 70, got %f", insight.Sentiment.Positive)
	}
	if insight.Sentiment.Negative != neutralSentiment {
		t.Errorf("expected Negative defaulted, got %f", insight.Sentiment.Negative)
	}
}

func TestParseInsight_NeverNilCollections(t *testing.T) {
	insight, err := ParseInsight(`{}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insight.ActionPlan == nil || insight.Dossiers == nil || insight.Demographics.MainInterests == nil {
		t.Error("expected empty, non-nil collections")
	}
}

func TestParseInsight_MalformedJSON(t *testing.T) {
	_, err := ParseInsight(`not json at all`)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseInsight_ExtractsSectorKeys(t *testing.T) {
	raw := `{
		"executive_summary": "ok",
		"scheduling_strategy": "Use WhatsApp Business.",
		"signature_services": "Hot towel shave."
	}`

	insight, err := ParseInsight(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if insight.SectorInsights["scheduling_strategy"] != "Use WhatsApp Business." {
		t.Errorf("missing sector insight, got %+v", insight.SectorInsights)
	}
	if len(insight.SectorInsights) != 2 {
		t.Errorf("expected 2 sector insights, got %d", len(insight.SectorInsights))
	}
}

func TestBuildInsightPrompt_SectorLookup(t *testing.T) {
	generic := BuildInsightPrompt("Something unknown", "Barbershop", "Example District", "- A (4.5)", 4.5)
	personal := BuildInsightPrompt("Personal care", "Barbershop", "Example District", "- A (4.5)", 4.5)

	if generic == personal {
		t.Error("expected sector extension for personal care")
	}
	if len(personal) <= len(generic) {
		t.Error("sector prompt should extend the base prompt")
	}
}
