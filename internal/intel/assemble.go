package intel

import (
	"math"
	"time"

	"github.com/platewatch/platewatch/internal/model"
)

// Overall threat level thresholds on the average top-competitor score.
const (
	highThreatFloor     = 70
	moderateThreatFloor = 45
)

// Narrative carries the externally-generated commentary into report
// assembly. All fields may be empty; the assembler substitutes nothing.
type Narrative struct {
	ExecutiveSummary          model.ExecutiveSummary
	KeywordCluster            model.KeywordCluster
	CompetitorKeywordClusters []model.CompetitorKeywords
	Enhancements              []model.CompetitorEnhancement
	StrategicVerdict          string
}

// AssembleReport builds the immutable report record from the filtered,
// scored and classified peer list. Peers must have been through
// FilterPeers, AnnotateAll and ApplyClassification; the caller is
// responsible for rejecting an empty peer list before assembly. Every
// sub-computation with no qualifying data yields an empty slice or zero
// value, never a nil-able hole.
func AssembleReport(target model.TargetBusiness, peers []model.VenueRecord, narrative Narrative, sameCategoryLimit int, now time.Time) *model.Report {
	top := TopCompetitors(peers, TopCompetitorLimit)
	avg := averageThreatScore(top)

	return &model.Report{
		Target:             target,
		Peers:              peers,
		TopCompetitors:     top,
		SameCategoryNearby: SameCategoryNearby(peers, target.PrimaryCategory, SameCategoryMaxKm, sameCategoryLimit),
		EmergingVenues:     EmergingVenues(peers, EmergingVenueLimit),
		CategoryBreakdown:  AggregateByCategory(peers),
		Standing:           Standing(target, peers),

		AverageThreatScore: avg,
		OverallThreatLevel: threatLevel(avg),

		ExecutiveSummary:          narrative.ExecutiveSummary,
		KeywordCluster:            narrative.KeywordCluster,
		CompetitorKeywordClusters: narrative.CompetitorKeywordClusters,
		Enhancements:              narrative.Enhancements,
		StrategicVerdict:          narrative.StrategicVerdict,

		CreatedAt: now.UTC(),
	}
}

func averageThreatScore(top []model.VenueRecord) int {
	if len(top) == 0 {
		return 0
	}
	var sum int
	for _, v := range top {
		sum += v.ThreatScore
	}
	return int(math.Round(float64(sum) / float64(len(top))))
}

func threatLevel(avg int) model.ThreatLevel {
	switch {
	case avg >= highThreatFloor:
		return model.ThreatLevelHigh
	case avg >= moderateThreatFloor:
		return model.ThreatLevelModerate
	default:
		return model.ThreatLevelLow
	}
}
