package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

type geocodeResult struct {
	Geometry struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
	FormattedAddress string `json:"formatted_address"`
}

// Geocode resolves a free-text query ("name, city" or just a city) to
// its single best-match location. Returns ErrNoMatch when the API finds
// nothing; other failures are transport or API errors.
func (c *httpClient) Geocode(ctx context.Context, query string) (*GeocodeResult, error) {
	if c.apiKey == "" {
		return nil, eris.New("places: api key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places: geocode rate limit")
	}

	params := url.Values{
		"address": {query},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "places: geocode build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: geocode request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("places: geocode returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: geocode read body")
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "places: geocode parse response")
	}

	switch {
	case parsed.Status == "ZERO_RESULTS", parsed.Status == "OK" && len(parsed.Results) == 0:
		return nil, eris.Wrapf(ErrNoMatch, "query %q", query)
	case parsed.Status != "OK":
		return nil, eris.Errorf("places: geocode failed: %s", parsed.Status)
	}

	best := parsed.Results[0]
	return &GeocodeResult{
		Location:         best.Geometry.Location,
		FormattedAddress: best.FormattedAddress,
	}, nil
}
