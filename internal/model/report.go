package model

import "time"

// ThreatLevel buckets the average top-competitor threat score.
type ThreatLevel string

const (
	ThreatLevelHigh     ThreatLevel = "High"
	ThreatLevelModerate ThreatLevel = "Moderate"
	ThreatLevelLow      ThreatLevel = "Low"
)

// NamedRating pairs a venue name with its rating, for extremal trackers.
type NamedRating struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// NamedCount pairs a venue name with its review count.
type NamedCount struct {
	Name        string `json:"name"`
	ReviewCount int    `json:"review_count"`
}

// CategoryAggregate is one row of per-category statistics over the
// classified peer set. Built once per report, never mutated afterwards.
type CategoryAggregate struct {
	Category         string      `json:"category"`
	Count            int         `json:"count"`
	TotalReviewVotes int         `json:"total_review_votes"`
	AverageRating    float64     `json:"average_rating"` // rounded to 1 decimal
	VenuesWithPhotos int         `json:"venues_with_photos"`
	HighestRated     NamedRating `json:"highest_rated"`
	LowestRated      NamedRating `json:"lowest_rated"` // ignores unrated venues
	MostReviewed     NamedCount  `json:"most_reviewed"`
}

// PercentileStanding is the target's inclusive percentile position
// against the peer distribution, per metric.
type PercentileStanding struct {
	RatingPercentile int `json:"rating_percentile"`
	ReviewPercentile int `json:"review_percentile"`
}

// ExecutiveSummary is the LLM-generated overview section.
type ExecutiveSummary struct {
	Overview            string   `json:"overview"`
	KeyFindings         []string `json:"key_findings"`
	ImmediateThreats    string   `json:"immediate_threats"`
	GrowthOpportunities string   `json:"growth_opportunities"`
	Recommendation      string   `json:"recommendation"`
}

// KeywordCluster groups keywords by sentiment for the target business.
type KeywordCluster struct {
	Primary  []string `json:"primary"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// CompetitorKeywords holds one competitor's keyword list.
type CompetitorKeywords struct {
	Venue    string   `json:"venue"`
	Keywords []string `json:"keywords"`
}

// CompetitorEnhancement is the LLM commentary attached to one top
// competitor.
type CompetitorEnhancement struct {
	Venue            string   `json:"venue"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	SentimentLabel   string   `json:"sentiment_label"`
	SentimentScore   float64  `json:"sentiment_score"`
	WhatTheyDoBetter []string `json:"what_they_do_better"`
	WhereYouWin      []string `json:"where_you_win"`
}

// Report is the immutable output of one analysis run. A new analysis
// always creates a new report; existing reports are never updated.
type Report struct {
	ID     string         `json:"id"`
	Target TargetBusiness `json:"target"`

	Peers              []VenueRecord       `json:"peers"`
	TopCompetitors     []VenueRecord       `json:"top_competitors"`
	SameCategoryNearby []VenueRecord       `json:"same_category_nearby"`
	EmergingVenues     []VenueRecord       `json:"emerging_venues"`
	CategoryBreakdown  []CategoryAggregate `json:"category_breakdown"`
	Standing           PercentileStanding  `json:"standing"`

	AverageThreatScore int         `json:"average_threat_score"`
	OverallThreatLevel ThreatLevel `json:"overall_threat_level"`

	ExecutiveSummary          ExecutiveSummary        `json:"executive_summary"`
	KeywordCluster            KeywordCluster          `json:"keyword_cluster"`
	CompetitorKeywordClusters []CompetitorKeywords    `json:"competitor_keyword_clusters"`
	Enhancements              []CompetitorEnhancement `json:"enhancements"`
	StrategicVerdict          string                  `json:"strategic_verdict"`

	CreatedAt time.Time `json:"created_at"`
}

// ReportSummary is a listing row for saved reports.
type ReportSummary struct {
	ID                 string      `json:"id"`
	TargetName         string      `json:"target_name"`
	TargetCity         string      `json:"target_city"`
	OverallThreatLevel ThreatLevel `json:"overall_threat_level"`
	CreatedAt          time.Time   `json:"created_at"`
}
