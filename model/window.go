package model

import "time"

// WindowType classifies a closed activation window.
type WindowType string

const (
	WindowBenefic      WindowType = "benefic"
	WindowEvolutionary WindowType = "evolutionary"
	WindowNeutral      WindowType = "neutral"
)

// Intensity bands a point-in-time aspect by how close it is to exact.
type Intensity string

const (
	IntensityExact    Intensity = "exact"
	IntensityStrong   Intensity = "strong"
	IntensityModerate Intensity = "moderate"
	IntensityFading   Intensity = "fading"
)

// ActivationWindow is a maximal contiguous run of sampled aspect hits.
// Invariant: Start <= Exact <= End.
type ActivationWindow struct {
	NatalBody   Body         `json:"natalBody"`
	MovingBody  Body         `json:"movingBody"`
	Type        AspectType   `json:"type"`
	Source      AspectSource `json:"source"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Exact       time.Time    `json:"exact"` // minimum-orb sample within the window
	MinOrb      float64      `json:"minOrb"`
	Description string       `json:"description"`
	WindowType  WindowType   `json:"windowType"`
}

// Contains reports whether t falls inside the window, inclusive.
func (w ActivationWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
