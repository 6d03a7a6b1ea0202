package intel

import (
	"math"

	"github.com/platewatch/platewatch/internal/geo"
	"github.com/platewatch/platewatch/internal/model"
)

// ThreatScore computes the general threat score for one venue: quality
// (rating), popularity (log-scaled review count, heavy-tailed in the
// wild) and linear proximity decay. Returns an integer in [0, 100].
// Rating and review count of 0 are valid and contribute nothing.
func ThreatScore(rating float64, reviewCount int, distanceKm float64, w GeneralWeights) int {
	ratingComponent := (rating / 5) * w.RatingPoints

	reviewComponent := math.Min(w.ReviewPoints,
		math.Log10(math.Max(1, float64(reviewCount)))/w.ReviewLogScale*w.ReviewPoints)

	proximityComponent := math.Max(0, w.ProximityPoints*(1-distanceKm/w.ProximityDecayKm))

	return clampScore(ratingComponent + reviewComponent + proximityComponent)
}

// CategoryThreatScore computes the category-specific threat score. The
// proximity contribution is a step function rather than a smooth curve:
// customers treat "two doors down" qualitatively differently from "2 km
// away". A same-category match adds a flat bonus. Returns an integer in
// [0, 100].
func CategoryThreatScore(rating float64, reviewCount int, distanceKm float64, sameCategory bool, w CategoryWeights) int {
	proximityComponent := stepPoints(distanceKm, w)

	ratingComponent := (rating / 5) * w.RatingPoints

	reviewComponent := math.Min(w.ReviewPoints,
		math.Log10(math.Max(1, float64(reviewCount)))/w.ReviewLogScale*w.ReviewPoints)

	var categoryBonus float64
	if sameCategory {
		categoryBonus = w.CategoryBonus
	}

	return clampScore(proximityComponent + ratingComponent + reviewComponent + categoryBonus)
}

// stepPoints walks the step table in order and falls back to a linear
// tail beyond the last step.
func stepPoints(distanceKm float64, w CategoryWeights) float64 {
	for _, step := range w.ProximitySteps {
		if distanceKm <= step.MaxKm {
			return step.Points
		}
	}
	return math.Max(0, w.TailPoints-distanceKm)
}

func clampScore(raw float64) int {
	return int(math.Round(math.Min(100, raw)))
}

// Annotate returns a scored copy of the venue: distance from origin
// (rounded to 2 decimals for presentation), both threat scores, and the
// same-category flag derived from tag overlap with the target's tags.
// The input record is not modified.
func Annotate(v model.VenueRecord, origin model.Coordinate, targetTags []string, w Weights) model.VenueRecord {
	distance := geo.DistanceKm(origin, v.Location)

	out := v
	out.DistanceKm = math.Round(distance*100) / 100
	out.SameCategory = tagsOverlap(v.CategoryTags, targetTags)
	out.ThreatScore = ThreatScore(v.Rating, v.ReviewCount, distance, w.General)
	out.CategoryThreatScore = CategoryThreatScore(v.Rating, v.ReviewCount, distance, out.SameCategory, w.Category)
	return out
}

// AnnotateAll scores every venue against the origin, preserving order.
func AnnotateAll(venues []model.VenueRecord, origin model.Coordinate, targetTags []string, w Weights) []model.VenueRecord {
	out := make([]model.VenueRecord, len(venues))
	for i, v := range venues {
		out[i] = Annotate(v, origin, targetTags, w)
	}
	return out
}

func tagsOverlap(a, b []string) bool {
	for _, ta := range a {
		for _, tb := range b {
			if ta == tb {
				return true
			}
		}
	}
	return false
}
