package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Clssp/New-Radas-Local/internal/llm"
	"github.com/Clssp/New-Radas-Local/internal/market"
	"github.com/Clssp/New-Radas-Local/internal/places"
	"github.com/Clssp/New-Radas-Local/internal/snapshot"
	"github.com/Clssp/New-Radas-Local/internal/trends"
)

var (
	// ErrQuotaExceeded is a normal negative admission, not a failure.
	ErrQuotaExceeded = errors.New("daily analysis limit reached")

	// ErrNoCompetitors stops the pipeline before synthesis: there is no
	// point synthesizing over nothing.
	ErrNoCompetitors = errors.New("no competitors found")
)

// ProgressFunc receives phase-level progress for a human operator.
type ProgressFunc func(phase string, percent int)

// The pipeline depends on the other feature services through narrow
// interfaces so each collaborator can be substituted in tests.

type MarketService interface {
	EnsureMarket(ctx context.Context, userID, term, location, businessType string) (*market.Market, error)
	GetOwned(ctx context.Context, marketID int64, userID string) (*market.Market, error)
}

type SnapshotService interface {
	Reusable(ctx context.Context, marketID int64, maxAge time.Duration) *snapshot.Snapshot
	Write(ctx context.Context, marketID int64, userID string, p snapshot.Payload) (int64, error)
	Latest(ctx context.Context, marketID int64) (*snapshot.Snapshot, error)
}

type QuotaService interface {
	TryAdmit(ctx context.Context, userID string) (bool, error)
}

type Collector interface {
	Collect(ctx context.Context, term, location string, limit int) (*places.CollectionResult, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, term, location, businessType, competitorListing string, meanRating float64) (*llm.StructuredInsight, error)
	SynthesizeSWOT(ctx context.Context, term, location, summary string) (*llm.SWOT, error)
}

type TrendsService interface {
	InterestOverTime(ctx context.Context, keyword string) []trends.Point
}

type RunRequest struct {
	UserID       string
	Term         string
	Location     string
	BusinessType string
	Limit        int

	// Force skips the cache gate ("reanalyze" in the dashboard).
	Force bool

	Progress ProgressFunc
}

type RunResult struct {
	MarketID   int64            `json:"market_id"`
	SnapshotID int64            `json:"snapshot_id"`
	Reused     bool             `json:"reused"`
	Payload    snapshot.Payload `json:"payload"`
	CreatedAt  time.Time        `json:"created_at"`
}

type Service struct {
	markets   MarketService
	snapshots SnapshotService
	quota     QuotaService
	collector Collector
	synth     Synthesizer
	trends    TrendsService // optional

	maxAge time.Duration
}

func NewService(
	markets MarketService,
	snapshots SnapshotService,
	quota QuotaService,
	collector Collector,
	synth Synthesizer,
	trendsSvc TrendsService,
) *Service {
	return &Service{
		markets:   markets,
		snapshots: snapshots,
		quota:     quota,
		collector: collector,
		synth:     synth,
		trends:    trendsSvc,
		maxAge:    snapshot.DefaultMaxAge,
	}
}

// Run executes one pipeline invocation: admission, market dedup, cache
// gate, collection, synthesis, persistence.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if req.Term == "" || req.Location == "" {
		return nil, errors.New("missing required fields")
	}

	progress := req.Progress
	if progress == nil {
		progress = func(string, int) {}
	}

	admitted, err := s.quota.TryAdmit(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !admitted {
		return nil, ErrQuotaExceeded
	}

	m, err := s.markets.EnsureMarket(ctx, req.UserID, req.Term, req.Location, req.BusinessType)
	if err != nil {
		return nil, fmt.Errorf("ensure market: %w", err)
	}

	if !req.Force {
		if cached := s.snapshots.Reusable(ctx, m.ID, s.maxAge); cached != nil {
			log.Printf("[PIPELINE] market %d: reusing snapshot %d", m.ID, cached.ID)
			return &RunResult{
				MarketID:   m.ID,
				SnapshotID: cached.ID,
				Reused:     true,
				Payload:    cached.Payload,
				CreatedAt:  cached.CreatedAt,
			}, nil
		}
	}

	progress("Searching for competitors", 10)
	collected, err := s.collector.Collect(ctx, req.Term, req.Location, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("collect competitors: %w", err)
	}
	if len(collected.Competitors) == 0 {
		return nil, ErrNoCompetitors
	}

	progress("Consulting AI for market insight", 40)
	insight, err := s.synth.Synthesize(
		ctx,
		req.Term,
		req.Location,
		m.BusinessType,
		competitorListing(collected.Competitors),
		places.MeanRating(collected.Competitors),
	)
	if err != nil {
		// Degraded beats missing: persist the collected facts with an
		// empty insight rather than aborting the run.
		log.Printf("[PIPELINE] market %d: synthesis failed, writing degraded snapshot: %v", m.ID, err)
		insight = llm.Degraded()
	}

	payload := snapshot.Payload{
		Term:              req.Term,
		Location:          req.Location,
		BusinessType:      m.BusinessType,
		Competitors:       collected.Competitors,
		Center:            collected.Center,
		StructuredInsight: *insight,
	}

	if s.trends != nil {
		payload.InterestOverTime = s.trends.InterestOverTime(ctx, req.Term)
	}

	progress("Saving analysis", 90)
	id, err := s.snapshots.Write(ctx, m.ID, req.UserID, payload)
	if err != nil {
		return nil, err
	}

	progress("Analysis complete", 100)
	return &RunResult{
		MarketID:   m.ID,
		SnapshotID: id,
		Payload:    payload,
		CreatedAt:  time.Now(),
	}, nil
}

// GenerateSWOT runs the on-demand SWOT step over a market's latest
// snapshot. Quota-gated like a full run; never touches the stored snapshot.
func (s *Service) GenerateSWOT(
	ctx context.Context,
	userID string,
	marketID int64,
) (*llm.SWOT, error) {

	m, err := s.markets.GetOwned(ctx, marketID, userID)
	if err != nil {
		return nil, err
	}

	latest, err := s.snapshots.Latest(ctx, marketID)
	if err != nil {
		return nil, err
	}

	admitted, err := s.quota.TryAdmit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if !admitted {
		return nil, ErrQuotaExceeded
	}

	return s.synth.SynthesizeSWOT(ctx, m.Term, m.Location, latest.Payload.ExecutiveSummary)
}

// competitorListing renders the "name (rating)" lines embedded in the
// synthesis prompt.
func competitorListing(competitors []places.Competitor) string {
	var sb strings.Builder
	for _, c := range competitors {
		if c.Rating != nil {
			fmt.Fprintf(&sb, "- %s (rating: %.1f)\n", c.Name, *c.Rating)
		} else {
			fmt.Fprintf(&sb, "- %s (unrated)\n", c.Name)
		}
	}
	return sb.String()
}
