// Package pipeline orchestrates one competitive analysis end to end:
// locate the target, sweep for nearby venues, score and classify them,
// obtain narrative commentary, assemble the report and persist it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/platewatch/platewatch/internal/config"
	"github.com/platewatch/platewatch/internal/intel"
	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/internal/store"
	"github.com/platewatch/platewatch/pkg/analyst"
	"github.com/platewatch/platewatch/pkg/places"
)

// Request identifies the business to analyze.
type Request struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// Pipeline runs analyses against its configured collaborators.
type Pipeline struct {
	cfg     *config.Config
	store   store.Store
	places  places.Client
	analyst analyst.Client
	weights intel.Weights
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, st store.Store, placesClient places.Client, analystClient analyst.Client, weights intel.Weights) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		store:   st,
		places:  placesClient,
		analyst: analystClient,
		weights: weights,
	}
}

// Run executes a full analysis for one target business. The returned
// report has already been persisted; its ID field is the stored id.
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.Report, error) {
	log := zap.L().With(zap.String("name", req.Name), zap.String("city", req.City))
	log.Info("pipeline: starting analysis")
	start := time.Now()

	origin, err := p.locate(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := p.places.NearbySearch(ctx, places.LatLng{Lat: origin.Latitude, Lng: origin.Longitude}, p.cfg.Search.RadiusMeters)
	if err != nil {
		return nil, eris.Wrapf(ErrDataSourceUnavailable, "nearby search: %v", err)
	}
	if len(raw) == 0 {
		return nil, eris.Wrapf(ErrNoVenuesNearby, "radius %dm around %s", p.cfg.Search.RadiusMeters, req.City)
	}
	log.Info("pipeline: venues discovered", zap.Int("count", len(raw)))

	target, targetTags := deriveTarget(req.Name, req.City, origin, raw)

	peers := intel.FilterPeers(ingestVenues(raw))
	if len(peers) == 0 {
		return nil, eris.Wrapf(ErrNoCompetingVenues, "%d venues excluded by category filter", len(raw))
	}

	peers = intel.AnnotateAll(peers, target.Location, targetTags, p.weights)

	analysis, err := p.analyst.Analyze(ctx, buildAnalystInput(target, peers, float64(p.cfg.Search.SameCategoryMaxKm)))
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: analyze")
	}

	peers = intel.ApplyClassification(peers, analysis.Classification, intel.FallbackCategory)
	target.PrimaryCategory = intel.ResolveCategory(analysis.TargetCategory, intel.FallbackCategory)

	report := intel.AssembleReport(target, peers, narrativeFrom(analysis), intel.SameCategoryLimit, time.Now())

	id, err := p.store.SaveReport(ctx, report)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: save report")
	}
	report.ID = id

	log.Info("pipeline: analysis complete",
		zap.String("report_id", id),
		zap.Int("peers", len(peers)),
		zap.String("threat_level", string(report.OverallThreatLevel)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// locate geocodes the target. The "name, city" query is tried first;
// when it has no match the city alone anchors the search instead, so a
// business unknown to the geocoder still gets a usable origin.
func (p *Pipeline) locate(ctx context.Context, req Request) (model.Coordinate, error) {
	queries := []string{fmt.Sprintf("%s, %s", req.Name, req.City), req.City}

	var lastErr error
	for _, q := range queries {
		result, err := p.places.Geocode(ctx, q)
		if err == nil {
			return model.Coordinate{Latitude: result.Location.Lat, Longitude: result.Location.Lng}, nil
		}
		lastErr = err
	}
	return model.Coordinate{}, eris.Wrapf(ErrDataSourceUnavailable, "geocode: %v", lastErr)
}

// buildAnalystInput projects the scored dataset into the analyst's
// request types: the top competitors by general threat score plus the
// close-in slice used for cuisine classification.
func buildAnalystInput(target model.TargetBusiness, peers []model.VenueRecord, maxKm float64) analyst.Input {
	top := intel.TopCompetitors(peers, intel.TopCompetitorLimit)
	competitors := make([]analyst.Competitor, 0, len(top))
	for _, v := range top {
		competitors = append(competitors, analyst.Competitor{
			Name:                v.Name,
			Rating:              v.Rating,
			ReviewCount:         v.ReviewCount,
			DistanceKm:          v.DistanceKm,
			ThreatScore:         v.ThreatScore,
			CategoryThreatScore: v.CategoryThreatScore,
			Categories:          intel.CompetingTags(v.CategoryTags),
		})
	}

	var nearby []analyst.NearbyVenue
	for _, v := range peers {
		if v.DistanceKm > maxKm {
			continue
		}
		nearby = append(nearby, analyst.NearbyVenue{
			Name:        v.Name,
			Rating:      v.Rating,
			ReviewCount: v.ReviewCount,
		})
	}

	return analyst.Input{
		TargetName:     target.Name,
		TargetCity:     target.City,
		TopCompetitors: competitors,
		Nearby:         nearby,
	}
}

// narrativeFrom converts the analyst response into the model narrative.
func narrativeFrom(a *analyst.Analysis) intel.Narrative {
	clusters := make([]model.CompetitorKeywords, 0, len(a.CompetitorKeywordClusters))
	for _, c := range a.CompetitorKeywordClusters {
		clusters = append(clusters, model.CompetitorKeywords{Venue: c.Venue, Keywords: c.Keywords})
	}

	enhancements := make([]model.CompetitorEnhancement, 0, len(a.Enhancements))
	for _, e := range a.Enhancements {
		enhancements = append(enhancements, model.CompetitorEnhancement{
			Venue:            e.Venue,
			Strengths:        e.Strengths,
			Weaknesses:       e.Weaknesses,
			SentimentLabel:   e.SentimentLabel,
			SentimentScore:   e.SentimentScore,
			WhatTheyDoBetter: e.WhatTheyDoBetter,
			WhereYouWin:      e.WhereYouWin,
		})
	}

	return intel.Narrative{
		ExecutiveSummary: model.ExecutiveSummary{
			Overview:            a.ExecutiveSummary.Overview,
			KeyFindings:         a.ExecutiveSummary.KeyFindings,
			ImmediateThreats:    a.ExecutiveSummary.ImmediateThreats,
			GrowthOpportunities: a.ExecutiveSummary.GrowthOpportunities,
			Recommendation:      a.ExecutiveSummary.Recommendation,
		},
		KeywordCluster: model.KeywordCluster{
			Primary:  a.KeywordCluster.Primary,
			Positive: a.KeywordCluster.Positive,
			Negative: a.KeywordCluster.Negative,
		},
		CompetitorKeywordClusters: clusters,
		Enhancements:              enhancements,
		StrategicVerdict:          a.StrategicVerdict,
	}
}
