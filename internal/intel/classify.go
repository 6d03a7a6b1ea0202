package intel

import (
	"strings"

	"github.com/platewatch/platewatch/internal/model"
)

// FallbackCategory is assigned when no explicit classification exists
// for a venue.
const FallbackCategory = "Multi-cuisine"

// genericTags are source tags that carry no cuisine signal and are
// stripped before tag-based category matching.
var genericTags = map[string]struct{}{
	"point_of_interest": {},
	"establishment":     {},
	"food":              {},
}

// ApplyClassification merges an externally-produced name→category map
// onto the venue list, returning annotated copies. Lookup is exact on
// the source venue name; any miss resolves to the fallback, never to an
// empty category. A mismatch caused by the labeller spelling a name
// differently therefore degrades silently to the fallback.
func ApplyClassification(venues []model.VenueRecord, labels map[string]string, fallback string) []model.VenueRecord {
	out := make([]model.VenueRecord, len(venues))
	for i, v := range venues {
		c := v
		c.AssignedCategory = ResolveCategory(labels[v.Name], fallback)
		out[i] = c
	}
	return out
}

// ResolveCategory returns the trimmed label, or the fallback when the
// label is empty or whitespace.
func ResolveCategory(label, fallback string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return fallback
	}
	return label
}

// CompetingTags strips generic tags from a raw tag list, keeping order.
// The remainder is what identifies a venue's cuisine lineage.
func CompetingTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := genericTags[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}
