package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/Clssp/New-Radas-Local/internal/llm"
	"github.com/Clssp/New-Radas-Local/internal/places"
	"github.com/Clssp/New-Radas-Local/internal/snapshot"
)

func sampleSnapshot() *snapshot.Snapshot {
	rating := 4.5
	count := 120
	p := snapshot.Payload{
		Term:         "padaria",
		Location:     "Campinas, SP",
		BusinessType: "Food & beverage",
		Competitors: []places.Competitor{
			{Name: "Pão Quente", Address: "Rua A, 1", Rating: &rating, RatingCount: &count},
			{Name: "Doce Vida", Address: "Rua B, 2"},
		},
	}
	p.ExecutiveSummary = "Crowded but underpriced segment."
	p.Sentiment = llm.Sentiment{Positive: 70, Neutral: 20, Negative: 10}
	p.ActionPlan = []string{"Open earlier", "Add delivery"}
	p.Dossiers = []llm.Dossier{{
		Name:              "Pão Quente",
		MarketPositioning: "Premium corner bakery.",
		Strengths:         "Location, loyal base",
		Weaknesses:        "High prices",
	}}
	return &snapshot.Snapshot{
		ID:        1,
		MarketID:  7,
		Payload:   p,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	pdf, err := Generate(sampleSnapshot())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic, got %q", pdf[:min(8, len(pdf))])
	}
}

func TestGenerate_EmptyInsightStillRenders(t *testing.T) {
	snap := sampleSnapshot()
	snap.Payload.StructuredInsight = *llm.Degraded()

	if _, err := Generate(snap); err != nil {
		t.Fatalf("Generate failed on degraded payload: %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Padaria Artesanal": "padaria-artesanal",
		"Pet Shop 24h":      "pet-shop-24h",
		"café!":             "caf",
	}
	for in, want := range cases {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, want %q", in, got, want)
		}
	}
}
