package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// DefaultMaxAge is the freshness window of the cache gate: a snapshot
// younger than this is reused instead of re-running the pipeline.
const DefaultMaxAge = 7 * 24 * time.Hour

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// --------------------------------------------------
// Cache gate
// --------------------------------------------------

// Reusable returns the most recent snapshot when it is strictly younger
// than maxAge, nil on a miss. Lookup errors are misses: fail open toward
// re-analysis, never toward stale data. Intentional, do not "fix" this
// into fail-closed.
func (s *Service) Reusable(
	ctx context.Context,
	marketID int64,
	maxAge time.Duration,
) *Snapshot {

	latest, err := s.repo.Latest(ctx, marketID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[CACHE] lookup for market %d failed, treating as miss: %v", marketID, err)
		}
		return nil
	}

	if s.now().Sub(latest.CreatedAt) < maxAge {
		return latest
	}
	return nil
}

// --------------------------------------------------
// Snapshot writer
// --------------------------------------------------

// Write appends a snapshot and derives its KPI row. KPI derivation is
// best-effort auxiliary data: its failure never fails the write.
func (s *Service) Write(
	ctx context.Context,
	marketID int64,
	userID string,
	p Payload,
) (int64, error) {

	id, err := s.repo.Insert(ctx, marketID, userID, p)
	if err != nil {
		return 0, fmt.Errorf("persist snapshot: %w", err)
	}

	entry := DeriveKPI(id, marketID, userID, p, s.now())
	if err := s.repo.InsertKPI(ctx, entry); err != nil {
		log.Printf("[KPI] entry for snapshot %d failed: %v", id, err)
	}

	return id, nil
}

func (s *Service) Latest(ctx context.Context, marketID int64) (*Snapshot, error) {
	return s.repo.Latest(ctx, marketID)
}

func (s *Service) KPIHistory(ctx context.Context, marketID int64) ([]KPIEntry, error) {
	return s.repo.KPIHistory(ctx, marketID)
}

func (s *Service) LatestDates(ctx context.Context, marketIDs []int64) (map[int64]time.Time, error) {
	return s.repo.LatestDates(ctx, marketIDs)
}
