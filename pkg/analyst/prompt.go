package analyst

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
)

const systemPrompt = "You are a senior restaurant competitive intelligence strategist. " +
	"You write detailed, actionable, and easy-to-understand analyses. " +
	"You always return strict JSON matching the requested schema, with no surrounding prose."

const promptTemplate = `Analyze the competitive landscape for a restaurant.

Restaurant: %s
City: %s

Top competitors (with computed scores):
%s

All nearby restaurants within 5km (classify each by food cuisine type):
%s

Return STRICT JSON with these fields:

{
  "executiveSummary": {
    "overview": "2-3 sentence high-level overview of the competitive landscape",
    "keyFindings": ["finding 1", "finding 2", "finding 3", "finding 4"],
    "immediateThreats": "1-2 sentences on the most urgent competitive threats",
    "growthOpportunities": "1-2 sentences on the biggest growth opportunities",
    "recommendation": "clear, actionable 1-2 sentence first step"
  },
  "yourKeywordCluster": {
    "primary": ["5-8 primary SEO/brand keywords"],
    "positive": ["5-8 positive sentiment keywords"],
    "negative": ["5-8 negative sentiment keywords to avoid"]
  },
  "competitorKeywordClusters": [
    {"restaurant": "competitor name", "keywords": ["their top keywords"]}
  ],
  "competitorEnhancements": [
    {
      "restaurant": "competitor name",
      "strengths": ["strength 1", "strength 2"],
      "weaknesses": ["weakness 1", "weakness 2"],
      "sentimentLabel": "Positive/Negative/Mixed",
      "sentimentScore": 0.0,
      "whatTheyDoBetter": ["2-3 specific things this competitor does better than %s"],
      "whereYouWin": ["2-3 specific areas where %s has the advantage"]
    }
  ],
  "cuisineClassification": {
    "restaurant name": "cuisine"
  },
  "targetCuisine": "single cuisine label for %s itself",
  "finalStrategicVerdict": "one-paragraph strategic verdict"
}

IMPORTANT:
- keyFindings must be exactly 4 specific insights, not generic advice
- include one competitorEnhancements entry per top competitor
- for cuisineClassification, map EVERY nearby restaurant name to exactly one
  specific cuisine (Biryani, Pizza, Chinese, North Indian, South Indian,
  Italian, Cafe, Fast Food, Street Food, Seafood, Bakery, Multi-cuisine, etc),
  inferring the cuisine from the restaurant name`

// buildPrompt renders the analysis prompt with the scored dataset
// embedded as JSON, not prose.
func buildPrompt(input Input) (string, error) {
	competitors, err := json.Marshal(input.TopCompetitors)
	if err != nil {
		return "", eris.Wrap(err, "analyst: marshal competitors")
	}

	nearby, err := json.Marshal(input.Nearby)
	if err != nil {
		return "", eris.Wrap(err, "analyst: marshal nearby venues")
	}

	return fmt.Sprintf(promptTemplate,
		input.TargetName, input.TargetCity,
		string(competitors), string(nearby),
		input.TargetName, input.TargetName, input.TargetName,
	), nil
}
