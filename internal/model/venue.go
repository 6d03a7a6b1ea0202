package model

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// VenueRecord is a single nearby venue observation. The fields up to
// PriceLevel are fixed at ingestion; DistanceKm, ThreatScore,
// CategoryThreatScore and SameCategory are filled in by intel.Annotate,
// and AssignedCategory by intel.ApplyClassification. Both produce
// annotated copies rather than mutating the input record.
type VenueRecord struct {
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Location     Coordinate `json:"location"`
	Rating       float64    `json:"rating"`       // [0,5], 0 when unrated
	ReviewCount  int        `json:"review_count"` // >= 0
	CategoryTags []string   `json:"category_tags"`
	PhotoCount   int        `json:"photo_count"`
	PriceLevel   int        `json:"price_level"` // 1-4, 0 when unknown

	DistanceKm          float64 `json:"distance_km"`
	ThreatScore         int     `json:"threat_score"`
	CategoryThreatScore int     `json:"category_threat_score"`
	SameCategory        bool    `json:"same_category"`

	AssignedCategory string `json:"assigned_category,omitempty"`
}

// TargetBusiness is the subject of an analysis.
type TargetBusiness struct {
	Name            string     `json:"name"`
	City            string     `json:"city"`
	Location        Coordinate `json:"location"`
	Rating          float64    `json:"rating"`
	ReviewCount     int        `json:"review_count"`
	PrimaryCategory string     `json:"primary_category"`
}
