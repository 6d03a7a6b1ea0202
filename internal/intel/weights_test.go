package intel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeightsValid(t *testing.T) {
	assert.NoError(t, ValidateWeights(DefaultWeights()))
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr string
	}{
		{
			name:    "general points off budget",
			mutate:  func(w *Weights) { w.General.RatingPoints = 60 },
			wantErr: "general points should sum to 100",
		},
		{
			name:    "zero log scale",
			mutate:  func(w *Weights) { w.General.ReviewLogScale = 0 },
			wantErr: "review_log_scale",
		},
		{
			name:    "zero decay distance",
			mutate:  func(w *Weights) { w.General.ProximityDecayKm = 0 },
			wantErr: "proximity_decay_km",
		},
		{
			name:    "no proximity steps",
			mutate:  func(w *Weights) { w.Category.ProximitySteps = nil },
			wantErr: "proximity_steps must not be empty",
		},
		{
			name: "steps out of order",
			mutate: func(w *Weights) {
				w.Category.ProximitySteps[1].MaxKm = 0.2
			},
			wantErr: "ascending max_km",
		},
		{
			name: "step points increase with distance",
			mutate: func(w *Weights) {
				w.Category.ProximitySteps[2].Points = 99
			},
			wantErr: "must not increase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := ValidateWeights(w)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
general:
  rating_points: 35
  review_points: 35
  review_log_scale: 4
  proximity_points: 30
  proximity_decay_km: 7
`), 0o600))

	w, err := LoadWeights(path)
	require.NoError(t, err)

	// Overlay on top of defaults: general changed, category untouched.
	assert.InDelta(t, 35, w.General.RatingPoints, 0.001)
	assert.InDelta(t, 35, w.General.ReviewPoints, 0.001)
	assert.InDelta(t, 20, w.Category.CategoryBonus, 0.001)
}

func TestLoadWeightsRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("general:\n  rating_points: 90\n"), 0o600))

	_, err := LoadWeights(path)
	assert.Error(t, err)
}

func TestLoadWeightsMissingFile(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
