package places

import "context"

// Provider is the external places/maps collaborator. Individual calls are
// assumed rate-limited and occasionally failing per item.
type Provider interface {
	TextSearch(ctx context.Context, query string) ([]PlaceRef, error)
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
	Geocode(ctx context.Context, address string) (*LatLng, error)
}
