package snapshot

import (
	"time"

	"github.com/Clssp/New-Radas-Local/internal/llm"
	"github.com/Clssp/New-Radas-Local/internal/places"
	"github.com/Clssp/New-Radas-Local/internal/trends"
)

// Payload is the structured result of one pipeline run. The synthesized
// insight is embedded so its keys sit at the top level of the stored JSON,
// next to the collected facts.
type Payload struct {
	Term         string `json:"term"`
	Location     string `json:"location"`
	BusinessType string `json:"business_type"`

	Competitors []places.Competitor `json:"competitors"`
	Center      *places.LatLng      `json:"center,omitempty"`

	llm.StructuredInsight

	InterestOverTime []trends.Point `json:"interest_over_time,omitempty"`
}

// Snapshot is one immutable, timestamped pipeline result for a market.
// Rows are append-only: reanalysis inserts, never updates.
type Snapshot struct {
	ID        int64     `json:"id"`
	MarketID  int64     `json:"market_id"`
	UserID    string    `json:"user_id"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// KPIEntry is the denormalized per-snapshot row used for trend charts.
// Write-once, at most one per snapshot.
type KPIEntry struct {
	SnapshotID        int64     `json:"snapshot_id"`
	MarketID          int64     `json:"market_id"`
	UserID            string    `json:"user_id"`
	AnalysisDate      time.Time `json:"analysis_date"`
	CompetitorCount   int       `json:"competitor_count"`
	AvgRating         float64   `json:"avg_rating"`
	PositiveSentiment float64   `json:"positive_sentiment"`
	NeutralSentiment  float64   `json:"neutral_sentiment"`
	NegativeSentiment float64   `json:"negative_sentiment"`
	ExecutiveSummary  string    `json:"executive_summary"`
}

// DeriveKPI computes the KPI row for a freshly written snapshot.
func DeriveKPI(snapshotID, marketID int64, userID string, p Payload, today time.Time) KPIEntry {
	return KPIEntry{
		SnapshotID:        snapshotID,
		MarketID:          marketID,
		UserID:            userID,
		AnalysisDate:      today,
		CompetitorCount:   len(p.Competitors),
		AvgRating:         places.MeanRating(p.Competitors),
		PositiveSentiment: p.Sentiment.Positive,
		NeutralSentiment:  p.Sentiment.Neutral,
		NegativeSentiment: p.Sentiment.Negative,
		ExecutiveSummary:  p.ExecutiveSummary,
	}
}
