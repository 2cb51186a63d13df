package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	exploreURL  = "https://trends.google.com/trends/api/explore"
	timelineURL = "https://trends.google.com/trends/api/widgetdata/multiline"

	defaultGeo       = "BR"
	defaultTimeframe = "today 12-m"
)

// Point is one sample in a search-interest series.
type Point struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

type Client interface {
	InterestOverTime(ctx context.Context, keyword string) ([]Point, error)
}

// HTTPClient talks to the public trends endpoints. The protocol is
// two-step: an explore call hands out a widget token, the timeline call
// redeems it. Both responses carry an anti-hijacking prefix that must be
// stripped before parsing.
type HTTPClient struct {
	http *http.Client
	geo  string
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		http: &http.Client{Timeout: 12 * time.Second},
		geo:  defaultGeo,
	}
}

func (c *HTTPClient) InterestOverTime(ctx context.Context, keyword string) ([]Point, error) {
	token, request, err := c.exploreToken(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return c.timeline(ctx, token, request)
}

func (c *HTTPClient) exploreToken(ctx context.Context, keyword string) (string, json.RawMessage, error) {
	req := map[string]any{
		"comparisonItem": []map[string]string{
			{"keyword": keyword, "geo": c.geo, "time": defaultTimeframe},
		},
		"category": 0,
		"property": "",
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return "", nil, err
	}

	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	params.Set("req", string(reqJSON))

	raw, err := c.get(ctx, exploreURL, params)
	if err != nil {
		return "", nil, err
	}

	var explore struct {
		Widgets []struct {
			ID      string          `json:"id"`
			Token   string          `json:"token"`
			Request json.RawMessage `json:"request"`
		} `json:"widgets"`
	}
	if err := json.Unmarshal(raw, &explore); err != nil {
		return "", nil, fmt.Errorf("explore response: %w", err)
	}

	for _, w := range explore.Widgets {
		if w.ID == "TIMESERIES" {
			return w.Token, w.Request, nil
		}
	}
	return "", nil, fmt.Errorf("no timeseries widget for %q", keyword)
}

func (c *HTTPClient) timeline(ctx context.Context, token string, request json.RawMessage) ([]Point, error) {
	params := url.Values{}
	params.Set("hl", "en-US")
	params.Set("tz", "360")
	params.Set("token", token)
	params.Set("req", string(request))

	raw, err := c.get(ctx, timelineURL, params)
	if err != nil {
		return nil, err
	}

	var timeline struct {
		Default struct {
			TimelineData []struct {
				Time  string `json:"time"`
				Value []int  `json:"value"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(raw, &timeline); err != nil {
		return nil, fmt.Errorf("timeline response: %w", err)
	}

	var points []Point
	for _, entry := range timeline.Default.TimelineData {
		if len(entry.Value) == 0 {
			continue
		}
		var unix int64
		if _, err := fmt.Sscanf(entry.Time, "%d", &unix); err != nil {
			continue
		}
		points = append(points, Point{
			Date:  time.Unix(unix, 0).UTC().Format("2006-01-02"),
			Score: entry.Value[0],
		})
	}
	return points, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		endpoint+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends api status %d", resp.StatusCode)
	}

	return []byte(stripResponsePrefix(string(raw))), nil
}

// stripResponsePrefix removes the ")]}'," guard the trends endpoints
// prepend to every JSON body.
func stripResponsePrefix(body string) string {
	body = strings.TrimPrefix(body, ")]}',")
	body = strings.TrimPrefix(body, ")]}'")
	return strings.TrimSpace(body)
}
