package model

// Chart bundles a natal chart with everything derived from it. Positions
// and Lines are fixed at birth; Transits is a cache of the most recent
// moving positions, refreshed by the daemon's tick loop.
type Chart struct {
	ID        string           `json:"id"`
	Birth     BirthData        `json:"birth"`
	JulianDay float64          `json:"julianDay"`
	Positions []PlanetPosition `json:"positions"`
	Lines     []AstroLine      `json:"lines"`
	Transits  []PlanetPosition `json:"transits,omitempty"`
}
