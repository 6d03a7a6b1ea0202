package intel

import (
	"regexp"

	"github.com/platewatch/platewatch/internal/model"
)

// excludedTags are source category tags that mark a venue as
// non-competing (lodging-class businesses returned by the data source
// alongside restaurants).
var excludedTags = map[string]struct{}{
	"lodging":    {},
	"hotel":      {},
	"motel":      {},
	"campground": {},
	"rv_park":    {},
}

// excludedNamePattern catches lodging businesses whose tags evade the
// tag-based filter but whose names give them away.
var excludedNamePattern = regexp.MustCompile(`(?i)\b(lodge|lodging|hotel|motel|resort|inn|hostel|dharamshala|guest\s*house|paying\s*guest|pg)\b`)

// FilterPeers removes non-competing venues from the raw list, preserving
// input order. An empty result is a valid outcome, distinct from the
// data source returning nothing; the caller decides what to do with it.
func FilterPeers(raw []model.VenueRecord) []model.VenueRecord {
	peers := make([]model.VenueRecord, 0, len(raw))
	for _, v := range raw {
		if hasExcludedTag(v.CategoryTags) {
			continue
		}
		if excludedNamePattern.MatchString(v.Name) {
			continue
		}
		peers = append(peers, v)
	}
	return peers
}

func hasExcludedTag(tags []string) bool {
	for _, t := range tags {
		if _, ok := excludedTags[t]; ok {
			return true
		}
	}
	return false
}
