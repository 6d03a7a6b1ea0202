package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewatch/platewatch/internal/model"
)

func scoredVenue(name string, threat, categoryThreat int) model.VenueRecord {
	return model.VenueRecord{Name: name, ThreatScore: threat, CategoryThreatScore: categoryThreat}
}

func TestRankByDescendingWithLimit(t *testing.T) {
	venues := []model.VenueRecord{
		scoredVenue("low", 20, 0),
		scoredVenue("high", 90, 0),
		scoredVenue("mid", 55, 0),
		scoredVenue("top", 95, 0),
	}

	got := RankBy(venues, ByThreatScore, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "top", got[0].Name)
	assert.Equal(t, "high", got[1].Name)
	assert.Equal(t, "mid", got[2].Name)
}

func TestRankByStableOnTies(t *testing.T) {
	venues := []model.VenueRecord{
		scoredVenue("first-equal", 70, 0),
		scoredVenue("higher", 80, 0),
		scoredVenue("second-equal", 70, 0),
	}

	got := RankBy(venues, ByThreatScore, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "higher", got[0].Name)
	// Equal scores keep original relative order.
	assert.Equal(t, "first-equal", got[1].Name)
	assert.Equal(t, "second-equal", got[2].Name)
}

func TestRankByDoesNotReorderInput(t *testing.T) {
	venues := []model.VenueRecord{
		scoredVenue("a", 10, 0),
		scoredVenue("b", 90, 0),
	}
	_ = RankBy(venues, ByThreatScore, 0)
	assert.Equal(t, "a", venues[0].Name)
}

func TestSameCategoryNearby(t *testing.T) {
	venues := []model.VenueRecord{
		{Name: "close-match", DistanceKm: 0.8, AssignedCategory: "Biryani", CategoryThreatScore: 60},
		{Name: "far-match", DistanceKm: 6.2, AssignedCategory: "Biryani", CategoryThreatScore: 90},
		{Name: "close-other", DistanceKm: 1.0, AssignedCategory: "Pizza", CategoryThreatScore: 95},
		{Name: "edge-match", DistanceKm: 5.0, AssignedCategory: "Biryani", CategoryThreatScore: 75},
	}

	got := SameCategoryNearby(venues, "Biryani", SameCategoryMaxKm, 8)
	require.Len(t, got, 2)
	assert.Equal(t, "edge-match", got[0].Name)
	assert.Equal(t, "close-match", got[1].Name)
}

func TestSameCategoryNearbyEmptyIsValid(t *testing.T) {
	venues := []model.VenueRecord{
		{Name: "other", DistanceKm: 1, AssignedCategory: "Pizza"},
	}
	got := SameCategoryNearby(venues, "Biryani", SameCategoryMaxKm, 5)
	assert.Empty(t, got)
}

func TestEmergingVenues(t *testing.T) {
	venues := []model.VenueRecord{
		{Name: "new-hot", Rating: 4.6, ReviewCount: 45},
		{Name: "saturated", Rating: 4.8, ReviewCount: 3000},
		{Name: "mediocre-new", Rating: 3.2, ReviewCount: 20},
		{Name: "boundary-rating", Rating: 3.5, ReviewCount: 50},   // rating must exceed 3.5
		{Name: "boundary-reviews", Rating: 4.0, ReviewCount: 120}, // reviews must be under 120
		{Name: "also-new", Rating: 3.6, ReviewCount: 119},
	}

	got := EmergingVenues(venues, EmergingVenueLimit)
	require.Len(t, got, 2)
	// Input order, no ranking.
	assert.Equal(t, "new-hot", got[0].Name)
	assert.Equal(t, "also-new", got[1].Name)
}

func TestEmergingVenuesLimit(t *testing.T) {
	venues := make([]model.VenueRecord, 0, 10)
	for i := 0; i < 10; i++ {
		venues = append(venues, model.VenueRecord{Name: "v", Rating: 4.0, ReviewCount: 10})
	}
	got := EmergingVenues(venues, 5)
	assert.Len(t, got, 5)
}
