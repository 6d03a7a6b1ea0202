package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/platewatch/platewatch/internal/config"
	"github.com/platewatch/platewatch/internal/intel"
	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/pkg/analyst"
	"github.com/platewatch/platewatch/pkg/places"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Search.RadiusMeters = 7000
	cfg.Search.SameCategoryMaxKm = 5
	return cfg
}

func testPipeline(t *testing.T) (*Pipeline, *mockPlacesClient, *mockAnalystClient, *mockStore) {
	t.Helper()
	placesMock := &mockPlacesClient{}
	analystMock := &mockAnalystClient{}
	storeMock := &mockStore{}
	p := New(testConfig(), storeMock, placesMock, analystMock, intel.DefaultWeights())
	return p, placesMock, analystMock, storeMock
}

var testOrigin = places.LatLng{Lat: 12.9352, Lng: 77.6245}

// testPlaces returns a sweep with the target itself, two competitors
// and one lodging venue the filter must drop.
func testPlaces() []places.Place {
	return []places.Place{
		{
			Name:             "Bella Roma",
			Vicinity:         "Koramangala, Bangalore",
			Location:         testOrigin,
			Rating:           4.2,
			UserRatingsTotal: 850,
			Types:            []string{"italian_restaurant", "restaurant", "food", "point_of_interest"},
			PhotoCount:       12,
			PriceLevel:       2,
		},
		{
			Name:             "Slice of Napoli",
			Vicinity:         "HSR Layout, Bangalore",
			Location:         places.LatLng{Lat: 12.9452, Lng: 77.6245},
			Rating:           4.6,
			UserRatingsTotal: 900,
			Types:            []string{"italian_restaurant", "restaurant"},
			PhotoCount:       30,
			PriceLevel:       3,
		},
		{
			Name:             "Grand Palace Hotel",
			Vicinity:         "MG Road, Bangalore",
			Location:         places.LatLng{Lat: 12.9752, Lng: 77.6245},
			Rating:           4.1,
			UserRatingsTotal: 2000,
			Types:            []string{"lodging", "restaurant"},
		},
		{
			Name:             "Spice Route",
			Vicinity:         "Indiranagar, Bangalore",
			Location:         places.LatLng{Lat: 12.9252, Lng: 77.6245},
			Rating:           4.0,
			UserRatingsTotal: 150,
			Types:            []string{"indian_restaurant", "restaurant"},
			PhotoCount:       5,
			PriceLevel:       2,
		},
	}
}

func testAnalysis() *analyst.Analysis {
	return &analyst.Analysis{
		ExecutiveSummary: analyst.ExecutiveSummary{
			Overview:       "Crowded Italian segment with one dominant rival.",
			KeyFindings:    []string{"Slice of Napoli leads on volume"},
			Recommendation: "Invest in review generation.",
		},
		Classification: map[string]string{
			"Bella Roma":      "Italian",
			"Slice of Napoli": "Italian",
		},
		TargetCategory:   "Italian",
		StrategicVerdict: "Defensible position with focused effort.",
	}
}

func TestRun_FullAnalysis(t *testing.T) {
	p, placesMock, analystMock, storeMock := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, "Bella Roma, Bangalore").
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(testPlaces(), nil)
	analystMock.On("Analyze", mock.Anything, mock.Anything).
		Return(testAnalysis(), nil)
	storeMock.On("SaveReport", mock.Anything, mock.Anything).
		Return("report-123", nil)

	report, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.NoError(t, err)

	assert.Equal(t, "report-123", report.ID)
	assert.Equal(t, "Bella Roma", report.Target.Name)
	assert.Equal(t, "Bangalore", report.Target.City)
	assert.InDelta(t, 4.2, report.Target.Rating, 0.001)
	assert.Equal(t, 850, report.Target.ReviewCount)
	assert.Equal(t, "Italian", report.Target.PrimaryCategory)

	// The lodging venue is gone; everything else survives classified.
	require.Len(t, report.Peers, 3)
	byName := map[string]model.VenueRecord{}
	for _, v := range report.Peers {
		byName[v.Name] = v
	}
	assert.NotContains(t, byName, "Grand Palace Hotel")
	assert.Equal(t, "Italian", byName["Slice of Napoli"].AssignedCategory)
	assert.Equal(t, intel.FallbackCategory, byName["Spice Route"].AssignedCategory)
	assert.True(t, byName["Slice of Napoli"].SameCategory)
	assert.Greater(t, byName["Slice of Napoli"].ThreatScore, 0)

	assert.NotEmpty(t, report.TopCompetitors)
	assert.NotEmpty(t, report.OverallThreatLevel)
	assert.Equal(t, "Crowded Italian segment with one dominant rival.", report.ExecutiveSummary.Overview)
	assert.Equal(t, "Defensible position with focused effort.", report.StrategicVerdict)
	assert.False(t, report.CreatedAt.IsZero())

	placesMock.AssertExpectations(t)
	analystMock.AssertExpectations(t)
	storeMock.AssertExpectations(t)
}

func TestRun_AnalystInputHoldsScoredDataset(t *testing.T) {
	p, placesMock, analystMock, storeMock := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(testPlaces(), nil)
	storeMock.On("SaveReport", mock.Anything, mock.Anything).
		Return("report-1", nil)

	analystMock.On("Analyze", mock.Anything, mock.MatchedBy(func(input analyst.Input) bool {
		if input.TargetName != "Bella Roma" || input.TargetCity != "Bangalore" {
			return false
		}
		if len(input.TopCompetitors) == 0 || len(input.Nearby) == 0 {
			return false
		}
		for _, c := range input.TopCompetitors {
			if c.ThreatScore <= 0 {
				return false
			}
		}
		return true
	})).Return(testAnalysis(), nil)

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.NoError(t, err)
	analystMock.AssertExpectations(t)
}

func TestRun_GeocodeCityFallback(t *testing.T) {
	p, placesMock, analystMock, storeMock := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, "Unknown Diner, Bangalore").
		Return(nil, eris.Wrap(places.ErrNoMatch, "query"))
	placesMock.On("Geocode", mock.Anything, "Bangalore").
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(testPlaces(), nil)
	analystMock.On("Analyze", mock.Anything, mock.Anything).
		Return(testAnalysis(), nil)
	storeMock.On("SaveReport", mock.Anything, mock.Anything).
		Return("report-2", nil)

	report, err := p.Run(context.Background(), Request{Name: "Unknown Diner", City: "Bangalore"})
	require.NoError(t, err)

	// No search result contains the requested name, so the target
	// keeps the requested identity anchored at the city origin.
	assert.Equal(t, "Unknown Diner", report.Target.Name)
	assert.InDelta(t, testOrigin.Lat, report.Target.Location.Latitude, 0.0001)
	assert.Zero(t, report.Target.Rating)
	placesMock.AssertExpectations(t)
}

func TestRun_GeocodeBothFail(t *testing.T) {
	p, placesMock, _, _ := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(nil, eris.New("dial tcp: connection refused"))

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrDataSourceUnavailable))
}

func TestRun_NearbySearchFails(t *testing.T) {
	p, placesMock, _, _ := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(nil, eris.New("status 502"))

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrDataSourceUnavailable))
}

func TestRun_NoVenuesNearby(t *testing.T) {
	p, placesMock, _, _ := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return([]places.Place{}, nil)

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoVenuesNearby))
	assert.False(t, eris.Is(err, ErrNoCompetingVenues))
}

func TestRun_AllVenuesFiltered(t *testing.T) {
	p, placesMock, _, _ := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return([]places.Place{
			{Name: "Grand Palace Hotel", Types: []string{"lodging"}},
			{Name: "Hilltop Guest House", Types: []string{"restaurant"}},
		}, nil)

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoCompetingVenues))
	assert.False(t, eris.Is(err, ErrNoVenuesNearby))
}

func TestRun_MalformedAnalysis(t *testing.T) {
	p, placesMock, analystMock, _ := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(testPlaces(), nil)
	analystMock.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, eris.Wrap(analyst.ErrMalformedAnalysis, "missing executiveSummary"))

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.True(t, eris.Is(err, analyst.ErrMalformedAnalysis))
}

func TestRun_SaveReportFails(t *testing.T) {
	p, placesMock, analystMock, storeMock := testPipeline(t)

	placesMock.On("Geocode", mock.Anything, mock.Anything).
		Return(&places.GeocodeResult{Location: testOrigin}, nil)
	placesMock.On("NearbySearch", mock.Anything, testOrigin, 7000).
		Return(testPlaces(), nil)
	analystMock.On("Analyze", mock.Anything, mock.Anything).
		Return(testAnalysis(), nil)
	storeMock.On("SaveReport", mock.Anything, mock.Anything).
		Return("", eris.New("disk full"))

	_, err := p.Run(context.Background(), Request{Name: "Bella Roma", City: "Bangalore"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save report")
}

func TestIngestVenues_ExplicitDefaults(t *testing.T) {
	venues := ingestVenues([]places.Place{
		{Name: "Unrated Corner", Location: places.LatLng{Lat: 1, Lng: 2}},
	})
	require.Len(t, venues, 1)
	assert.Zero(t, venues[0].Rating)
	assert.Zero(t, venues[0].ReviewCount)
	assert.Zero(t, venues[0].PriceLevel)
	assert.Zero(t, venues[0].PhotoCount)
	assert.InDelta(t, 1.0, venues[0].Location.Latitude, 0.0001)
}

func TestDeriveTarget_MatchAndFallback(t *testing.T) {
	raw := testPlaces()

	target, tags := deriveTarget("bella roma", "Bangalore", model.Coordinate{Latitude: 1, Longitude: 1}, raw)
	assert.Equal(t, "Bella Roma", target.Name)
	assert.InDelta(t, 4.2, target.Rating, 0.001)
	assert.Equal(t, []string{"italian_restaurant", "restaurant"}, tags)

	origin := model.Coordinate{Latitude: 9, Longitude: 9}
	target, tags = deriveTarget("Nowhere Cafe", "Bangalore", origin, raw)
	assert.Equal(t, "Nowhere Cafe", target.Name)
	assert.Equal(t, origin, target.Location)
	assert.Equal(t, []string{"restaurant"}, tags)
}
