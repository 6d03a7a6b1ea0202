// Package intel implements the competitive-intelligence core: peer
// filtering, threat scoring, classification merge, category aggregation,
// ranking views, percentile standing and report assembly. Every function
// in this package is a pure transformation of its inputs; all I/O and
// error handling live in internal/pipeline.
package intel

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ProximityStep is one rung of the category score's distance step
// function: venues at or under MaxKm earn Points.
type ProximityStep struct {
	MaxKm  float64 `yaml:"max_km"`
	Points float64 `yaml:"points"`
}

// GeneralWeights tunes the general threat score.
type GeneralWeights struct {
	RatingPoints     float64 `yaml:"rating_points"`
	ReviewPoints     float64 `yaml:"review_points"`
	ReviewLogScale   float64 `yaml:"review_log_scale"`
	ProximityPoints  float64 `yaml:"proximity_points"`
	ProximityDecayKm float64 `yaml:"proximity_decay_km"`
}

// CategoryWeights tunes the category-specific threat score.
type CategoryWeights struct {
	RatingPoints   float64         `yaml:"rating_points"`
	ReviewPoints   float64         `yaml:"review_points"`
	ReviewLogScale float64         `yaml:"review_log_scale"`
	CategoryBonus  float64         `yaml:"category_bonus"`
	ProximitySteps []ProximityStep `yaml:"proximity_steps"`
	TailPoints     float64         `yaml:"tail_points"`
}

// Weights holds the tunables for both scoring models.
type Weights struct {
	General  GeneralWeights  `yaml:"general"`
	Category CategoryWeights `yaml:"category"`
}

// DefaultWeights returns the reference scoring model. Point budgets sum
// to 100 for each formula.
func DefaultWeights() Weights {
	return Weights{
		General: GeneralWeights{
			RatingPoints:     40,
			ReviewPoints:     30,
			ReviewLogScale:   4, // 10k reviews saturate the review component
			ProximityPoints:  30,
			ProximityDecayKm: 7, // matches the search radius
		},
		Category: CategoryWeights{
			RatingPoints:   25,
			ReviewPoints:   20,
			ReviewLogScale: 4,
			CategoryBonus:  20,
			ProximitySteps: []ProximityStep{
				{MaxKm: 0.5, Points: 35},
				{MaxKm: 1, Points: 32},
				{MaxKm: 2, Points: 27},
				{MaxKm: 3, Points: 20},
				{MaxKm: 5, Points: 12},
			},
			TailPoints: 5,
		},
	}
}

// ValidateWeights checks that a Weights is internally consistent.
func ValidateWeights(w Weights) error {
	var errs []string

	generalSum := w.General.RatingPoints + w.General.ReviewPoints + w.General.ProximityPoints
	if math.Abs(generalSum-100) > 1 {
		errs = append(errs, fmt.Sprintf("general points should sum to 100, got %.1f", generalSum))
	}
	if w.General.ReviewLogScale <= 0 {
		errs = append(errs, "general.review_log_scale must be > 0")
	}
	if w.General.ProximityDecayKm <= 0 {
		errs = append(errs, "general.proximity_decay_km must be > 0")
	}

	if len(w.Category.ProximitySteps) == 0 {
		errs = append(errs, "category.proximity_steps must not be empty")
	} else {
		categorySum := w.Category.RatingPoints + w.Category.ReviewPoints +
			w.Category.CategoryBonus + w.Category.ProximitySteps[0].Points
		if math.Abs(categorySum-100) > 1 {
			errs = append(errs, fmt.Sprintf("category points should sum to 100, got %.1f", categorySum))
		}
		for i := 1; i < len(w.Category.ProximitySteps); i++ {
			prev, cur := w.Category.ProximitySteps[i-1], w.Category.ProximitySteps[i]
			if cur.MaxKm <= prev.MaxKm {
				errs = append(errs, "category.proximity_steps must have ascending max_km")
			}
			if cur.Points > prev.Points {
				errs = append(errs, "category.proximity_steps points must not increase with distance")
			}
		}
	}
	if w.Category.ReviewLogScale <= 0 {
		errs = append(errs, "category.review_log_scale must be > 0")
	}
	if w.Category.TailPoints < 0 {
		errs = append(errs, "category.tail_points must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("intel: weights validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadWeights reads a Weights overlay from a YAML file and validates it.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, eris.Wrapf(err, "intel: read weights %s", path)
	}

	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, eris.Wrapf(err, "intel: parse weights %s", path)
	}

	if err := ValidateWeights(w); err != nil {
		return Weights{}, err
	}
	return w, nil
}
