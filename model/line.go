package model

// LineType identifies which chart angle a line belongs to.
type LineType string

const (
	LineMC  LineType = "MC"
	LineIC  LineType = "IC"
	LineASC LineType = "ASC"
	LineDSC LineType = "DSC"
)

// GeoPoint is a geographic sample point in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AstroLine is one polyline segment of an astrocartography line.
// Invariant: no two consecutive points differ in longitude by more than
// 180 degrees; lines crossing the antimeridian are split into several
// AstroLine values.
type AstroLine struct {
	Body     Body       `json:"body"`
	LineType LineType   `json:"lineType"`
	Points   []GeoPoint `json:"points"`
	Source   string     `json:"source,omitempty"` // e.g. "natal" or "transit"
}

// Sentiment is the external classifier's tag for a (body, lineType) pair.
// The engine consumes it as an injected lookup and never derives it.
type Sentiment string

const (
	SentimentPositive  Sentiment = "positive"
	SentimentDifficult Sentiment = "difficult"
	SentimentNeutral   Sentiment = "neutral"
)

// InfluenceBand classifies how strongly a line acts at a given distance.
type InfluenceBand string

const (
	InfluenceVeryStrong InfluenceBand = "very strong"
	InfluenceStrong     InfluenceBand = "strong"
	InfluenceModerate   InfluenceBand = "moderate"
	InfluenceMild       InfluenceBand = "mild"
)

// NearbyLine is a proximity query result for one (body, lineType) pair,
// deduplicated across that pair's segments.
type NearbyLine struct {
	Body       Body          `json:"body"`
	LineType   LineType      `json:"lineType"`
	DistanceKm float64       `json:"distanceKm"`
	Influence  InfluenceBand `json:"influence"`
	Side       string        `json:"side"` // "on", "east", or "west"
}
