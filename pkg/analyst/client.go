// Package analyst generates structured competitive commentary for a
// scored venue dataset via the Anthropic API. The caller treats it as a
// black box with a fixed response schema; a response that does not
// satisfy the schema surfaces as ErrMalformedAnalysis.
package analyst

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrMalformedAnalysis marks a response that is not parseable JSON or
// is missing required schema keys. Fatal for the request; per-venue
// classification gaps are not malformed (they fall back downstream).
var ErrMalformedAnalysis = eris.New("analyst: malformed analysis response")

// Competitor is one scored venue embedded in the prompt.
type Competitor struct {
	Name                string   `json:"name"`
	Rating              float64  `json:"rating"`
	ReviewCount         int      `json:"reviewCount"`
	DistanceKm          float64  `json:"distanceKm"`
	ThreatScore         int      `json:"threatScore"`
	CategoryThreatScore int      `json:"categoryThreatScore"`
	Categories          []string `json:"categories,omitempty"`
}

// NearbyVenue is a venue sent for cuisine classification.
type NearbyVenue struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviews"`
}

// Input is the structured dataset the commentary is generated from.
type Input struct {
	TargetName     string
	TargetCity     string
	TopCompetitors []Competitor
	Nearby         []NearbyVenue
}

// ExecutiveSummary is the high-level overview section of an analysis.
type ExecutiveSummary struct {
	Overview            string   `json:"overview"`
	KeyFindings         []string `json:"keyFindings"`
	ImmediateThreats    string   `json:"immediateThreats"`
	GrowthOpportunities string   `json:"growthOpportunities"`
	Recommendation      string   `json:"recommendation"`
}

// KeywordCluster groups keywords by sentiment.
type KeywordCluster struct {
	Primary  []string `json:"primary"`
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// CompetitorKeywords is one competitor's keyword list.
type CompetitorKeywords struct {
	Venue    string   `json:"restaurant"`
	Keywords []string `json:"keywords"`
}

// Enhancement is per-competitor commentary.
type Enhancement struct {
	Venue            string   `json:"restaurant"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	SentimentLabel   string   `json:"sentimentLabel"`
	SentimentScore   float64  `json:"sentimentScore"`
	WhatTheyDoBetter []string `json:"whatTheyDoBetter"`
	WhereYouWin      []string `json:"whereYouWin"`
}

// Analysis is the fixed response schema.
type Analysis struct {
	ExecutiveSummary          ExecutiveSummary     `json:"executiveSummary"`
	KeywordCluster            KeywordCluster       `json:"yourKeywordCluster"`
	CompetitorKeywordClusters []CompetitorKeywords `json:"competitorKeywordClusters"`
	Enhancements              []Enhancement        `json:"competitorEnhancements"`
	Classification            map[string]string    `json:"cuisineClassification"`
	TargetCategory            string               `json:"targetCuisine"`
	StrategicVerdict          string               `json:"finalStrategicVerdict"`
}

// Client generates an Analysis for an Input.
type Client interface {
	Analyze(ctx context.Context, input Input) (*Analysis, error)
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewClient creates an analyst Client backed by the Anthropic SDK.
func NewClient(apiKey, model string, maxTokens int64) Client {
	return &sdkClient{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *sdkClient) Analyze(ctx context.Context, input Input) (*Analysis, error) {
	prompt, err := buildPrompt(input)
	if err != nil {
		return nil, err
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
		Temperature: sdk.Float(0.7),
	})
	if err != nil {
		return nil, eris.Wrap(err, "analyst: create message")
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	analysis, err := parseAnalysis(text)
	if err != nil {
		return nil, err
	}

	zap.L().Info("analyst: analysis complete",
		zap.String("model", c.model),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
		zap.Int("classified_venues", len(analysis.Classification)),
	)

	return analysis, nil
}
