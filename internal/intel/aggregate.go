package intel

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/platewatch/platewatch/internal/model"
)

// AggregateByCategory folds the classified peer list into one aggregate
// row per distinct assigned category. Extremal trackers are updated in
// input order with first-write-wins ties, and the lowest-rated tracker
// ignores unrated venues. The result is sorted by total review votes
// descending. Requires ApplyClassification to have run; every venue must
// carry a category.
func AggregateByCategory(venues []model.VenueRecord) []model.CategoryAggregate {
	byCategory := make(map[string]*model.CategoryAggregate)
	ratingSums := make(map[string]float64)
	order := make([]string, 0)

	for _, v := range venues {
		if v.AssignedCategory == "" {
			// Programmer error: aggregation before classification merge.
			zap.L().DPanic("intel: venue missing assigned category", zap.String("venue", v.Name))
			continue
		}

		agg, ok := byCategory[v.AssignedCategory]
		if !ok {
			agg = &model.CategoryAggregate{Category: v.AssignedCategory}
			byCategory[v.AssignedCategory] = agg
			order = append(order, v.AssignedCategory)
		}

		agg.Count++
		agg.TotalReviewVotes += v.ReviewCount
		if v.PhotoCount > 0 {
			agg.VenuesWithPhotos++
		}
		ratingSums[v.AssignedCategory] += v.Rating
		agg.AverageRating = round1(ratingSums[v.AssignedCategory] / float64(agg.Count))

		if v.Rating > agg.HighestRated.Rating {
			agg.HighestRated = model.NamedRating{Name: v.Name, Rating: v.Rating}
		}
		if v.Rating > 0 && (agg.LowestRated.Name == "" || v.Rating < agg.LowestRated.Rating) {
			agg.LowestRated = model.NamedRating{Name: v.Name, Rating: v.Rating}
		}
		if v.ReviewCount > agg.MostReviewed.ReviewCount {
			agg.MostReviewed = model.NamedCount{Name: v.Name, ReviewCount: v.ReviewCount}
		}
	}

	out := make([]model.CategoryAggregate, 0, len(order))
	for _, category := range order {
		out = append(out, *byCategory[category])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalReviewVotes > out[j].TotalReviewVotes
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
