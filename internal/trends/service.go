package trends

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = time.Hour

// Service caches interest series and swallows provider failures: a market
// analysis never fails because trends data is unavailable.
type Service struct {
	client Client
	cache  *redis.Client
}

func NewService(client Client, cache *redis.Client) *Service {
	return &Service{client: client, cache: cache}
}

// InterestOverTime returns an empty series on any failure.
func (s *Service) InterestOverTime(ctx context.Context, keyword string) []Point {
	key := "radar:trends:" + keyword

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var points []Point
			if err := json.Unmarshal([]byte(cached), &points); err == nil {
				return points
			}
		}
	}

	points, err := s.client.InterestOverTime(ctx, keyword)
	if err != nil {
		log.Printf("[TRENDS] lookup for %q failed: %v", keyword, err)
		return nil
	}

	if s.cache != nil && len(points) > 0 {
		if encoded, err := json.Marshal(points); err == nil {
			_ = s.cache.Set(ctx, key, encoded, cacheTTL).Err()
		}
	}

	return points
}
