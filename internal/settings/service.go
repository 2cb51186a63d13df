package settings

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DailyAnalysisLimit = "daily_analysis_limit"

	defaultDailyLimit = 10
	cacheTTL          = 60 * time.Second
	cachePrefix       = "radar:settings:"
)

// Service reads process-wide configuration. Values are cached briefly so
// admin updates take effect without a restart, within the cache TTL.
type Service struct {
	repo  Repository
	cache *redis.Client
}

func NewService(repo Repository, cache *redis.Client) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Get(ctx context.Context, name string) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cachePrefix+name).Result(); err == nil {
			return cached, nil
		}
	}

	value, err := s.repo.Get(ctx, name)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cachePrefix+name, value, cacheTTL).Err()
	}
	return value, nil
}

// DailyLimit falls back to the built-in default on any lookup problem so
// quota enforcement keeps working when the settings table is unreachable.
func (s *Service) DailyLimit(ctx context.Context) int {
	value, err := s.Get(ctx, DailyAnalysisLimit)
	if err != nil {
		log.Printf("[SETTINGS] %s lookup failed, using default %d: %v",
			DailyAnalysisLimit, defaultDailyLimit, err)
		return defaultDailyLimit
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < 0 {
		log.Printf("[SETTINGS] %s has invalid value %q, using default %d",
			DailyAnalysisLimit, value, defaultDailyLimit)
		return defaultDailyLimit
	}
	return limit
}

// Update writes the setting and drops the cached copy immediately.
func (s *Service) Update(ctx context.Context, name, value string) error {
	if err := s.repo.Update(ctx, name, value); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, cachePrefix+name).Err()
	}
	return nil
}
