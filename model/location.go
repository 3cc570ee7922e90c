package model

// Location is a city or place record supplied by the external location
// database. The engine never resolves names itself.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// LineActivation pairs a detected aspect with its point-in-time intensity.
type LineActivation struct {
	Aspect    Aspect    `json:"aspect"`
	Intensity Intensity `json:"intensity"`
}

// OverallStrength summarizes a city's current activation level.
type OverallStrength string

const (
	StrengthPeak     OverallStrength = "peak"
	StrengthActive   OverallStrength = "active"
	StrengthBuilding OverallStrength = "building"
	StrengthQuiet    OverallStrength = "quiet"
)

// CityActivation is the per-city activation summary: which of the natal
// bodies with lines near the city are currently aspected, the next
// upcoming window, and an optional best-visit recommendation.
type CityActivation struct {
	Location        Location          `json:"location"`
	NearbyLines     []NearbyLine      `json:"nearbyLines"`
	ActiveAspects   []LineActivation  `json:"activeAspects"`
	NextWindow      *ActivationWindow `json:"nextWindow,omitempty"`
	Overall         OverallStrength   `json:"overall"`
	BestVisitWindow *ScoredWindow     `json:"bestVisitWindow,omitempty"`
}

// ScoredWindow is a window with its visit score, surfaced only when the
// score clears the recommendation threshold.
type ScoredWindow struct {
	Window ActivationWindow `json:"window"`
	Score  float64          `json:"score"`
}

// SynthesisEntry is one ranked location in a transit synthesis result.
type SynthesisEntry struct {
	Location   Location         `json:"location"`
	Score      float64          `json:"score"`
	BestWindow ActivationWindow `json:"bestWindow"`
}

// Synthesis holds the two independent ranked lists produced by a
// transit synthesis scan.
type Synthesis struct {
	Optimal []SynthesisEntry `json:"optimal"`
	Intense []SynthesisEntry `json:"intense"`
}
