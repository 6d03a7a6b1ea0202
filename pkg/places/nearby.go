package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

type nearbyResponse struct {
	Results []nearbyResult `json:"results"`
	Status  string         `json:"status"`
}

type nearbyResult struct {
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Photos           []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	PriceLevel *int `json:"price_level"`
}

// NearbySearch returns restaurant venues around the given location.
// ZERO_RESULTS maps to an empty slice and a nil error; the caller
// distinguishes "nothing nearby" from transport failure.
func (c *httpClient) NearbySearch(ctx context.Context, location LatLng, radiusMeters int) ([]Place, error) {
	if c.apiKey == "" {
		return nil, eris.New("places: api key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: nearby rate limit")
	}

	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", location.Lat, location.Lng)},
		"radius":   {fmt.Sprintf("%d", radiusMeters)},
		"type":     {"restaurant"},
		"key":      {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nearbyURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: nearby build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: nearby request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: nearby returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: nearby read body")
	}

	var parsed nearbyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "places: nearby parse response")
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []Place{}, nil
	default:
		return nil, eris.Errorf("places: nearby search failed: %s", parsed.Status)
	}

	out := make([]Place, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		p := Place{
			Name:             r.Name,
			Vicinity:         r.Vicinity,
			Location:         r.Geometry.Location,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Types:            r.Types,
			PhotoCount:       len(r.Photos),
		}
		if r.PriceLevel != nil {
			p.PriceLevel = *r.PriceLevel
		}
		out = append(out, p)
	}
	return out, nil
}
