package intel

import (
	"sort"

	"github.com/platewatch/platewatch/internal/model"
)

// Default view limits and thresholds, from the reference presentation.
const (
	TopCompetitorLimit = 5
	EmergingVenueLimit = 5
	SameCategoryLimit  = 5
	SameCategoryMaxKm  = 5
	emergingMinRating  = 3.5
	emergingMaxReviews = 120
)

// ScoreSelector picks the score field a ranking is ordered by.
type ScoreSelector func(model.VenueRecord) int

// ByThreatScore selects the general threat score.
func ByThreatScore(v model.VenueRecord) int { return v.ThreatScore }

// ByCategoryThreatScore selects the category-specific threat score.
func ByCategoryThreatScore(v model.VenueRecord) int { return v.CategoryThreatScore }

// RankBy returns the top venues ordered descending by the selected
// score. The sort is stable: equal scores keep their original relative
// order, which is the only tie-break. A limit <= 0 means no truncation.
func RankBy(venues []model.VenueRecord, key ScoreSelector, limit int) []model.VenueRecord {
	ranked := make([]model.VenueRecord, len(venues))
	copy(ranked, venues)

	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopCompetitors ranks all peers by general threat score, regardless of
// distance or category.
func TopCompetitors(venues []model.VenueRecord, limit int) []model.VenueRecord {
	return RankBy(venues, ByThreatScore, limit)
}

// SameCategoryNearby filters to peers within maxKm that share the
// target's primary category, then ranks by category threat score.
func SameCategoryNearby(venues []model.VenueRecord, category string, maxKm float64, limit int) []model.VenueRecord {
	matched := make([]model.VenueRecord, 0, len(venues))
	for _, v := range venues {
		if v.DistanceKm <= maxKm && v.AssignedCategory == category {
			matched = append(matched, v)
		}
	}
	return RankBy(matched, ByCategoryThreatScore, limit)
}

// EmergingVenues picks well-rated venues that have not yet accumulated
// many reviews, a proxy for newly popular places since the data source
// exposes no opening date. Input order is preserved; no ranking.
func EmergingVenues(venues []model.VenueRecord, limit int) []model.VenueRecord {
	out := make([]model.VenueRecord, 0, limit)
	for _, v := range venues {
		if v.Rating > emergingMinRating && v.ReviewCount < emergingMaxReviews {
			out = append(out, v)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
