// Package places provides a client for the Google Maps Geocoding and
// Places Nearby Search APIs, the raw venue data source for analyses.
package places

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultNearbyURL  = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
)

// ErrNoMatch is returned by Geocode when the API finds no result for
// the query. Transport and API failures are returned as distinct,
// wrapped errors.
var ErrNoMatch = eris.New("places: no geocode match")

// LatLng is a WGS84 point as returned by the API.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one raw venue observation from Nearby Search.
type Place struct {
	Name             string
	Vicinity         string
	Location         LatLng
	Rating           float64
	UserRatingsTotal int
	Types            []string
	PhotoCount       int
	PriceLevel       int // 0 when the API omits it
}

// GeocodeResult is the best-match location for a text query.
type GeocodeResult struct {
	Location         LatLng
	FormattedAddress string
}

// Client performs Google Maps API operations.
type Client interface {
	Geocode(ctx context.Context, query string) (*GeocodeResult, error)
	NearbySearch(ctx context.Context, location LatLng, radiusMeters int) ([]Place, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithGeocodeURL overrides the geocoding endpoint.
func WithGeocodeURL(url string) Option {
	return func(c *httpClient) {
		c.geocodeURL = url
	}
}

// WithNearbyURL overrides the nearby search endpoint.
func WithNearbyURL(url string) Option {
	return func(c *httpClient) {
		c.nearbyURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

type httpClient struct {
	apiKey     string
	geocodeURL string
	nearbyURL  string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Google Maps client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		geocodeURL: defaultGeocodeURL,
		nearbyURL:  defaultNearbyURL,
		http:       &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
