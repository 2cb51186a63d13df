package quota

import (
	"context"
	"time"

	"github.com/Clssp/New-Radas-Local/internal/settings"
)

// Usage is the read-only view served to the UI.
type Usage struct {
	Count        int  `json:"count"`
	Limit        int  `json:"limit"`
	LimitReached bool `json:"limit_reached"`
}

// Service is the per-user daily admission control on pipeline runs. The
// reset is lazy: the first admitted run of a new day starts the counter
// over, no background job involved.
type Service struct {
	repo     Repository
	settings *settings.Service
	now      func() time.Time
}

func NewService(repo Repository, settings *settings.Service) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		now:      time.Now,
	}
}

// TryAdmit consumes one run when allowed. A false result is a normal
// negative admission, not an error; callers must not retry it.
func (s *Service) TryAdmit(ctx context.Context, userID string) (bool, error) {
	limit := s.settings.DailyLimit(ctx)
	if limit == 0 {
		return false, nil
	}
	return s.repo.AdmitOne(ctx, userID, s.today(), limit)
}

// Peek applies the same date-rollover interpretation as TryAdmit but never
// mutates state.
func (s *Service) Peek(ctx context.Context, userID string) (*Usage, error) {
	limit := s.settings.DailyLimit(ctx)

	count, lastDate, err := s.repo.Usage(ctx, userID)
	if err != nil {
		return nil, err
	}

	if lastDate == nil || !sameDay(*lastDate, s.today()) {
		count = 0
	}

	return &Usage{
		Count:        count,
		Limit:        limit,
		LimitReached: count >= limit,
	}, nil
}

func (s *Service) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}
