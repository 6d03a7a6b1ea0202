package pipeline

import "github.com/rotisserie/eris"

// Failure kinds surfaced by Run. Callers match them with eris.Is; the
// HTTP layer maps each kind to a distinct status code.
var (
	// ErrDataSourceUnavailable covers geocoding and venue-search
	// transport or API failures.
	ErrDataSourceUnavailable = eris.New("pipeline: data source unavailable")

	// ErrNoVenuesNearby means the search succeeded but returned no
	// venues inside the radius.
	ErrNoVenuesNearby = eris.New("pipeline: no venues nearby")

	// ErrNoCompetingVenues means venues were found but the competing-
	// category filter removed all of them.
	ErrNoCompetingVenues = eris.New("pipeline: no competing venues after filtering")
)
