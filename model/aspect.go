package model

// AspectType is one of the five Ptolemaic aspects.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"
)

// Angle returns the exact aspect angle in degrees.
func (a AspectType) Angle() float64 {
	switch a {
	case Conjunction:
		return 0
	case Sextile:
		return 60
	case Square:
		return 90
	case Trine:
		return 120
	case Opposition:
		return 180
	default:
		return 0
	}
}

// Harmonious reports whether the aspect is classically easy (the flowing
// aspects plus the conjunction, which takes on the nature of the bodies).
func (a AspectType) Harmonious() bool {
	return a == Trine || a == Sextile || a == Conjunction
}

// AllAspects lists the detected aspect types in angle order.
var AllAspects = []AspectType{Conjunction, Sextile, Square, Trine, Opposition}

// AspectSource distinguishes real-time transits from secondary progressions.
type AspectSource string

const (
	SourceTransit     AspectSource = "transit"
	SourceProgression AspectSource = "progression"
)

// Aspect is one detected angular relationship between a moving body and a
// natal position. Ephemeral: recomputed per query, never persisted.
type Aspect struct {
	MovingBody Body         `json:"movingBody"`
	NatalBody  Body         `json:"natalBody"`
	Type       AspectType   `json:"type"`
	Source     AspectSource `json:"source"`
	Orb        float64      `json:"orb"`    // degrees from exact, >= 0
	MaxOrb     float64      `json:"maxOrb"` // effective orb limit after per-body tuning
	Applying   bool         `json:"applying"`
}
