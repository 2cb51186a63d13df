package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// neutralSentiment is the midpoint default for a sentiment axis the
// provider omitted, on the 0-100 scale used everywhere in the payload.
const neutralSentiment = 50

// Sentiment scores need not sum to 100.
type Sentiment struct {
	Positive float64 `json:"Positive"`
	Neutral  float64 `json:"Neutral"`
	Negative float64 `json:"Negative"`
}

type Demographics struct {
	Summary       string   `json:"summary"`
	AgeRange      string   `json:"age_range"`
	MainInterests []string `json:"main_interests"`
}

type Dossier struct {
	Name              string `json:"name"`
	MarketPositioning string `json:"market_positioning"`
	Strengths         string `json:"strengths"`
	Weaknesses        string `json:"weaknesses"`
}

// StructuredInsight is the parsed synthesis result. After ParseInsight (or
// Degraded) every field is set: downstream consumers never null-check
// top-level keys.
type StructuredInsight struct {
	ExecutiveSummary string            `json:"executive_summary"`
	Sentiment        Sentiment         `json:"sentiment_analysis"`
	ActionPlan       []string          `json:"action_plan"`
	Demographics     Demographics      `json:"demographics"`
	Dossiers         []Dossier         `json:"competitor_dossiers"`
	SectorInsights   map[string]string `json:"sector_insights,omitempty"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// CleanJSONResponse strips markdown fences and surrounding prose some models
// wrap around their JSON output.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// ParseInsight parses a raw completion into a fully-keyed StructuredInsight.
// Missing keys are defaulted, never left undefined.
func ParseInsight(raw string) (*StructuredInsight, error) {
	cleaned := CleanJSONResponse(raw)

	var wire struct {
		ExecutiveSummary string             `json:"executive_summary"`
		Sentiment        map[string]float64 `json:"sentiment_analysis"`
		ActionPlan       []string           `json:"action_plan"`
		Demographics     Demographics       `json:"demographics"`
		Dossiers         []Dossier          `json:"competitor_dossiers"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	insight := &StructuredInsight{
		ExecutiveSummary: wire.ExecutiveSummary,
		Sentiment: Sentiment{
			Positive: sentimentOrDefault(wire.Sentiment, "Positive"),
			Neutral:  sentimentOrDefault(wire.Sentiment, "Neutral"),
			Negative: sentimentOrDefault(wire.Sentiment, "Negative"),
		},
		ActionPlan:   wire.ActionPlan,
		Demographics: wire.Demographics,
		Dossiers:     wire.Dossiers,
	}
	if insight.ActionPlan == nil {
		insight.ActionPlan = []string{}
	}
	if insight.Dossiers == nil {
		insight.Dossiers = []Dossier{}
	}
	if insight.Demographics.MainInterests == nil {
		insight.Demographics.MainInterests = []string{}
	}

	// Sector-specific keys arrive at the top level of the provider response.
	var all map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &all); err == nil {
		for _, key := range sectorInsightKeys {
			rawVal, ok := all[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(rawVal, &s); err == nil && s != "" {
				if insight.SectorInsights == nil {
					insight.SectorInsights = make(map[string]string)
				}
				insight.SectorInsights[key] = s
			}
		}
	}

	return insight, nil
}

func sentimentOrDefault(m map[string]float64, axis string) float64 {
	if v, ok := m[axis]; ok {
		return v
	}
	return neutralSentiment
}

// Degraded is the placeholder substituted when synthesis fails entirely:
// the snapshot is still persisted, clearly degraded.
func Degraded() *StructuredInsight {
	return &StructuredInsight{
		ActionPlan: []string{},
		Dossiers:   []Dossier{},
		Demographics: Demographics{
			MainInterests: []string{},
		},
	}
}
