package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	textSearchURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	detailsURL    = "https://maps.googleapis.com/maps/api/place/details/json"
	geocodeURL    = "https://maps.googleapis.com/maps/api/geocode/json"

	// Fixed field set requested per candidate.
	detailFields = "name,rating,user_ratings_total,formatted_address," +
		"formatted_phone_number,website,geometry,opening_hours,price_level,reviews"
)

type GoogleClient struct {
	apiKey string
	http   *http.Client
}

func NewGoogleClient() *GoogleClient {
	return &GoogleClient{
		apiKey: os.Getenv("MAPS_API_KEY"),
		http:   &http.Client{Timeout: 12 * time.Second},
	}
}

func (g *GoogleClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if g.apiKey == "" {
		return errors.New("missing MAPS_API_KEY")
	}

	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		endpoint+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places api error: %s", string(raw))
	}

	return json.Unmarshal(raw, out)
}

func (g *GoogleClient) TextSearch(ctx context.Context, query string) ([]PlaceRef, error) {
	params := url.Values{}
	params.Set("query", query)

	var result struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID string `json:"place_id"`
			Name    string `json:"name"`
		} `json:"results"`
	}

	if err := g.get(ctx, textSearchURL, params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("text search failed: %s", result.Status)
	}

	refs := make([]PlaceRef, 0, len(result.Results))
	for _, r := range result.Results {
		refs = append(refs, PlaceRef{PlaceID: r.PlaceID, Name: r.Name})
	}
	return refs, nil
}

func (g *GoogleClient) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)

	var result struct {
		Status string `json:"status"`
		Result struct {
			Name             string   `json:"name"`
			FormattedAddress string   `json:"formatted_address"`
			Rating           *float64 `json:"rating"`
			UserRatingsTotal *int     `json:"user_ratings_total"`
			Phone            *string  `json:"formatted_phone_number"`
			Website          *string  `json:"website"`
			PriceLevel       *int     `json:"price_level"`
			Geometry         *struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
			Reviews []struct {
				Text string `json:"text"`
			} `json:"reviews"`
		} `json:"result"`
	}

	if err := g.get(ctx, detailsURL, params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" {
		return nil, fmt.Errorf("place details failed: %s", result.Status)
	}

	details := &PlaceDetails{
		Name:        result.Result.Name,
		Address:     result.Result.FormattedAddress,
		Rating:      result.Result.Rating,
		RatingCount: result.Result.UserRatingsTotal,
		Phone:       result.Result.Phone,
		Website:     result.Result.Website,
		PriceLevel:  result.Result.PriceLevel,
	}
	if result.Result.Geometry != nil {
		loc := result.Result.Geometry.Location
		details.Location = &loc
	}
	for _, rev := range result.Result.Reviews {
		details.Reviews = append(details.Reviews, rev.Text)
	}
	return details, nil
}

func (g *GoogleClient) Geocode(ctx context.Context, address string) (*LatLng, error) {
	params := url.Values{}
	params.Set("address", address)

	var result struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}

	if err := g.get(ctx, geocodeURL, params, &result); err != nil {
		return nil, err
	}

	if result.Status != "OK" || len(result.Results) == 0 {
		return nil, fmt.Errorf("geocode failed: %s", result.Status)
	}

	loc := result.Results[0].Geometry.Location
	return &loc, nil
}
