package core

import "github.com/siderealworks/astrocarto/model"

// OrbPolicy is the per-aspect and per-body orb tuning table. The values are
// hand-tuned; they are exposed as plain data so deployments can swap them
// without touching the detector.
type OrbPolicy struct {
	// BaseOrbs are the untuned orbs per aspect type, in degrees.
	BaseOrbs map[model.AspectType]float64
	// TransitMultipliers scale the base orb per moving body for transits.
	// Slow outer bodies get tight multipliers so a years-long conjunction
	// is not reported as permanently exact.
	TransitMultipliers map[model.Body]float64
	// ProgressionMultipliers scale the base orb for progressed bodies,
	// which move on the order of a degree per year.
	ProgressionMultipliers map[model.Body]float64
}

// DefaultOrbPolicy returns the tuned orb table the engine ships with.
func DefaultOrbPolicy() OrbPolicy {
	return OrbPolicy{
		BaseOrbs: map[model.AspectType]float64{
			model.Conjunction: 8.0,
			model.Opposition:  8.0,
			model.Trine:       6.0,
			model.Square:      6.0,
			model.Sextile:     4.0,
		},
		TransitMultipliers: map[model.Body]float64{
			model.Sun:       1.0,
			model.Moon:      1.0,
			model.Mercury:   1.0,
			model.Venus:     1.0,
			model.Mars:      0.9,
			model.Jupiter:   0.7,
			model.Saturn:    0.6,
			model.Uranus:    0.5,
			model.Neptune:   0.4,
			model.Pluto:     0.35,
			model.NorthNode: 0.5,
			model.SouthNode: 0.5,
			model.Lilith:    0.5,
			model.Chiron:    0.5,
			model.Ceres:     0.6,
			model.Pallas:    0.6,
			model.Vesta:     0.6,
		},
		ProgressionMultipliers: map[model.Body]float64{
			model.Sun:       0.3,
			model.Moon:      0.4,
			model.Mercury:   0.25,
			model.Venus:     0.25,
			model.Mars:      0.2,
			model.Jupiter:   0.15,
			model.Saturn:    0.15,
			model.Uranus:    0.1,
			model.Neptune:   0.1,
			model.Pluto:     0.1,
			model.NorthNode: 0.15,
			model.SouthNode: 0.15,
			model.Lilith:    0.15,
			model.Chiron:    0.15,
			model.Ceres:     0.2,
			model.Pallas:    0.2,
			model.Vesta:     0.2,
		},
	}
}

// MaxOrb returns the effective orb limit for one (body, aspect, source)
// combination. Bodies missing from the multiplier table fall back to 1.0.
func (p OrbPolicy) MaxOrb(moving model.Body, aspect model.AspectType, source model.AspectSource) float64 {
	base := p.BaseOrbs[aspect]

	table := p.TransitMultipliers
	if source == model.SourceProgression {
		table = p.ProgressionMultipliers
	}
	mult, ok := table[moving]
	if !ok {
		mult = 1.0
	}
	return base * mult
}

// Favorability holds the hand-tuned scoring weights used when ranking
// visit windows and synthesis locations.
type Favorability struct {
	// MovingBody weights express how welcome each transiting or
	// progressed body's influence is.
	MovingBody map[model.Body]float64
	// Aspect weights express the ease or friction of each aspect type.
	Aspect map[model.AspectType]float64
	// Sentiment maps the external line classifier's tags to score terms.
	Sentiment map[model.Sentiment]float64
	// ProgressionBonus is added when the window is progression-sourced.
	ProgressionBonus float64
	// VisitThreshold is the minimum score before a best-visit window is
	// surfaced at all; below it no recommendation is made.
	VisitThreshold float64
}

// DefaultFavorability returns the tuned weight table.
func DefaultFavorability() Favorability {
	return Favorability{
		MovingBody: map[model.Body]float64{
			model.Sun:       0.4,
			model.Moon:      0.3,
			model.Mercury:   0.3,
			model.Venus:     0.7,
			model.Mars:      -0.2,
			model.Jupiter:   0.8,
			model.Saturn:    -0.4,
			model.Uranus:    0.0,
			model.Neptune:   -0.1,
			model.Pluto:     -0.3,
			model.NorthNode: 0.3,
			model.SouthNode: -0.1,
			model.Lilith:    -0.2,
			model.Chiron:    0.1,
			model.Ceres:     0.2,
			model.Pallas:    0.2,
			model.Vesta:     0.2,
		},
		Aspect: map[model.AspectType]float64{
			model.Trine:       0.6,
			model.Sextile:     0.4,
			model.Conjunction: 0.3,
			model.Square:      -0.4,
			model.Opposition:  -0.3,
		},
		Sentiment: map[model.Sentiment]float64{
			model.SentimentPositive:  0.6,
			model.SentimentNeutral:   0.1,
			model.SentimentDifficult: -0.5,
		},
		ProgressionBonus: 0.2,
		VisitThreshold:   1.2,
	}
}

// SentimentLookup is the injected LineSentimentClassifier contract: a
// positive/difficult/neutral tag per (body, lineType). The engine never
// computes sentiment itself.
type SentimentLookup func(body model.Body, lineType model.LineType) model.Sentiment

// beneficBodies and heavyBodies drive window classification.
var beneficBodies = map[model.Body]bool{
	model.Venus:   true,
	model.Jupiter: true,
}

var heavyBodies = map[model.Body]bool{
	model.Saturn:  true,
	model.Uranus:  true,
	model.Neptune: true,
	model.Pluto:   true,
}
