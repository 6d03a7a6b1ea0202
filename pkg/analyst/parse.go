package analyst

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// parseAnalysis extracts and validates the JSON analysis from a model
// response. Models occasionally wrap the JSON in a markdown code fence
// despite instructions, so the parser tolerates surrounding text.
func parseAnalysis(text string) (*Analysis, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, eris.Wrap(ErrMalformedAnalysis, "no JSON object in response")
	}

	var a Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, eris.Wrapf(ErrMalformedAnalysis, "parse: %v", err)
	}

	if err := validateAnalysis(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// validateAnalysis enforces the required keys of the schema. Optional
// sections (keyword clusters, enhancements, verdict) may be empty, but
// the summary and the classification map must be present: downstream
// aggregation is meaningless without them.
func validateAnalysis(a *Analysis) error {
	if strings.TrimSpace(a.ExecutiveSummary.Overview) == "" {
		return eris.Wrap(ErrMalformedAnalysis, "missing executiveSummary.overview")
	}
	if a.Classification == nil {
		return eris.Wrap(ErrMalformedAnalysis, "missing cuisineClassification")
	}
	return nil
}

// extractJSON returns the outermost JSON object in text, or "".
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
