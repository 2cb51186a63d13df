package places

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceRef is a lightweight result from a text search, enough to request
// details with.
type PlaceRef struct {
	PlaceID string
	Name    string
}

// PlaceDetails is the fixed field set requested per candidate.
type PlaceDetails struct {
	Name        string
	Address     string
	Rating      *float64
	RatingCount *int
	Phone       *string
	Website     *string
	Location    *LatLng
	PriceLevel  *int
	Reviews     []string
}

// Competitor is one normalized record produced by the Collector.
// Name and Address are always present; everything else is optional.
type Competitor struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Rating         *float64 `json:"rating,omitempty"`
	RatingCount    *int     `json:"rating_count,omitempty"`
	PriceTier      *int     `json:"price_tier,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	Website        *string  `json:"website,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	ReviewExcerpts []string `json:"review_excerpts,omitempty"`
}

// CollectionResult bundles the normalized competitors with the geocoded
// market center (nil when geocoding failed, which is non-fatal).
type CollectionResult struct {
	Competitors []Competitor `json:"competitors"`
	Center      *LatLng      `json:"center,omitempty"`
}

// MeanRating averages ratings over the competitors that have one.
// Defined as 0 when no competitor is rated.
func MeanRating(competitors []Competitor) float64 {
	sum := 0.0
	count := 0
	for _, c := range competitors {
		if c.Rating != nil {
			sum += *c.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
