package intel

import (
	"math"

	"github.com/platewatch/platewatch/internal/model"
)

// Standing computes the target's percentile position against the peer
// distribution on rating and review count. The comparison is inclusive
// (percentile of peers the target matches or beats), so a lone business
// in its market lands at the 100th percentile rather than the 0th. An
// empty peer list yields zero percentiles; that is a valid outcome, not
// an error.
func Standing(target model.TargetBusiness, peers []model.VenueRecord) model.PercentileStanding {
	if len(peers) == 0 {
		return model.PercentileStanding{}
	}

	var ratingBeaten, reviewBeaten int
	for _, p := range peers {
		if p.Rating <= target.Rating {
			ratingBeaten++
		}
		if p.ReviewCount <= target.ReviewCount {
			reviewBeaten++
		}
	}

	return model.PercentileStanding{
		RatingPercentile: percentile(ratingBeaten, len(peers)),
		ReviewPercentile: percentile(reviewBeaten, len(peers)),
	}
}

func percentile(beaten, total int) int {
	return int(math.Round(100 * float64(beaten) / float64(total)))
}
