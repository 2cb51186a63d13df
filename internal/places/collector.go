package places

import (
	"context"
	"fmt"
	"log"
	"sync"
)

const (
	// DefaultLimit bounds the candidate set to keep provider cost down.
	DefaultLimit = 10

	maxReviewExcerpts = 3
	maxExcerptLen     = 280

	detailWorkers = 4
)

// Collector queries the places provider and normalizes competitor records.
// Per-candidate failures are skipped, never fatal: partial success is the
// normal case.
type Collector struct {
	provider Provider
}

func NewCollector(provider Provider) *Collector {
	return &Collector{provider: provider}
}

func (c *Collector) Collect(
	ctx context.Context,
	term, location string,
	limit int,
) (*CollectionResult, error) {

	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	query := fmt.Sprintf("%s in %s", term, location)
	refs, err := c.provider.TextSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	if len(refs) > limit {
		refs = refs[:limit]
	}

	// Detail lookups run concurrently but every candidate is attempted and
	// the input order is preserved in the output.
	slots := make([]*Competitor, len(refs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, detailWorkers)

	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref PlaceRef) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			details, err := c.provider.PlaceDetails(ctx, ref.PlaceID)
			if err != nil {
				log.Printf("[COLLECTOR] skipping %q: %v", ref.Name, err)
				return
			}
			comp := normalize(details)
			if comp == nil {
				log.Printf("[COLLECTOR] skipping %q: missing name", ref.PlaceID)
				return
			}
			slots[i] = comp
		}(i, ref)
	}
	wg.Wait()

	competitors := make([]Competitor, 0, len(refs))
	for _, comp := range slots {
		if comp != nil {
			competitors = append(competitors, *comp)
		}
	}

	result := &CollectionResult{Competitors: competitors}

	// Reference coordinate for the market center, best effort.
	center, err := c.provider.Geocode(ctx, location)
	if err != nil {
		log.Printf("[COLLECTOR] geocode %q failed: %v", location, err)
	} else {
		result.Center = center
	}

	return result, nil
}

// normalize maps raw provider details to a Competitor. Candidates without a
// name are dropped.
func normalize(d *PlaceDetails) *Competitor {
	if d.Name == "" {
		return nil
	}

	comp := &Competitor{
		Name:        d.Name,
		Address:     d.Address,
		Rating:      d.Rating,
		RatingCount: d.RatingCount,
		PriceTier:   d.PriceLevel,
		Phone:       d.Phone,
		Website:     d.Website,
	}
	if d.Location != nil {
		lat, lng := d.Location.Lat, d.Location.Lng
		comp.Latitude = &lat
		comp.Longitude = &lng
	}

	for _, review := range d.Reviews {
		if len(comp.ReviewExcerpts) >= maxReviewExcerpts {
			break
		}
		if review == "" {
			continue
		}
		comp.ReviewExcerpts = append(comp.ReviewExcerpts, truncate(review, maxExcerptLen))
	}

	return comp
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
