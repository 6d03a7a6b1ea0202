package pipeline

import (
	"strings"

	"github.com/platewatch/platewatch/internal/intel"
	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/pkg/places"
)

// ingestVenues converts raw search results into venue records. This is
// the single boundary where missing upstream fields become explicit
// zero defaults (unrated venues carry rating 0, unknown price level 0).
func ingestVenues(raw []places.Place) []model.VenueRecord {
	venues := make([]model.VenueRecord, 0, len(raw))
	for _, p := range raw {
		venues = append(venues, model.VenueRecord{
			Name:    p.Name,
			Address: p.Vicinity,
			Location: model.Coordinate{
				Latitude:  p.Location.Lat,
				Longitude: p.Location.Lng,
			},
			Rating:       p.Rating,
			ReviewCount:  p.UserRatingsTotal,
			CategoryTags: p.Types,
			PhotoCount:   p.PhotoCount,
			PriceLevel:   p.PriceLevel,
		})
	}
	return venues
}

// deriveTarget locates the requested business among the raw search
// results by case-insensitive name containment and builds the target
// identity from it. When no result matches, the target keeps the
// requested identity at the geocoded origin with no rating data.
func deriveTarget(name, city string, origin model.Coordinate, raw []places.Place) (model.TargetBusiness, []string) {
	target := model.TargetBusiness{
		Name:     name,
		City:     city,
		Location: origin,
	}
	tags := []string{"restaurant"}

	lower := strings.ToLower(name)
	for _, p := range raw {
		if !strings.Contains(strings.ToLower(p.Name), lower) {
			continue
		}
		target.Name = p.Name
		target.Location = model.Coordinate{
			Latitude:  p.Location.Lat,
			Longitude: p.Location.Lng,
		}
		target.Rating = p.Rating
		target.ReviewCount = p.UserRatingsTotal
		if competing := intel.CompetingTags(p.Types); len(competing) > 0 {
			tags = competing
		}
		break
	}
	return target, tags
}
