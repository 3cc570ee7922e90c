package core

import (
	"context"
	"sort"
	"time"

	"github.com/siderealworks/astrocarto/model"
)

// CityRadiusKm bounds which lines count as "near" a city when deriving its
// activation summary. It matches the outer edge of the moderate band.
const CityRadiusKm = influenceModerateKm

// nextWindowHorizon is how far ahead CityActivation looks for the city's
// next activation window.
const nextWindowHorizon = 365 * 24 * time.Hour

// ScoringEngine combines proximity and window scanning into ranked,
// per-location activation summaries. All methods are pure: the engine
// carries only configuration, never query state.
type ScoringEngine struct {
	Policy    OrbPolicy
	Weights   Favorability
	Sentiment SentimentLookup
	Scanner   *Scanner
}

// NewScoringEngine wires a scoring engine from its configuration tables.
// sentiment is the injected external classifier; nil means every line reads
// as neutral.
func NewScoringEngine(policy OrbPolicy, weights Favorability, sentiment SentimentLookup) *ScoringEngine {
	if sentiment == nil {
		sentiment = func(model.Body, model.LineType) model.Sentiment {
			return model.SentimentNeutral
		}
	}
	return &ScoringEngine{
		Policy:    policy,
		Weights:   weights,
		Sentiment: sentiment,
		Scanner:   NewScanner(policy),
	}
}

// CurrentActivations unions the transit- and progression-sourced aspect
// hits at one instant, deduplicated by (moving, natal, aspect, source) with
// the tightest orb kept, sorted by intensity then orb.
func (e *ScoringEngine) CurrentActivations(natal []model.PlanetPosition, birthJD float64, now time.Time) []model.LineActivation {
	targetJD := JulianDayFromTime(now)
	transit := DetectAspects(PositionsAt(targetJD), natal, model.SourceTransit, e.Policy)
	progressed := DetectAspects(
		PositionsAt(ProgressedJulianDay(birthJD, targetJD)),
		natal, model.SourceProgression, e.Policy,
	)

	seen := make(map[windowKey]model.Aspect)
	for _, a := range append(transit, progressed...) {
		key := windowKey{a.MovingBody, a.NatalBody, a.Type, a.Source}
		if cur, ok := seen[key]; !ok || a.Orb < cur.Orb {
			seen[key] = a
		}
	}

	activations := make([]model.LineActivation, 0, len(seen))
	for _, a := range seen {
		activations = append(activations, model.LineActivation{
			Aspect:    a,
			Intensity: IntensityFor(a.Orb, a.MaxOrb),
		})
	}

	sort.Slice(activations, func(i, j int) bool {
		ri, rj := intensityRank(activations[i].Intensity), intensityRank(activations[j].Intensity)
		if ri != rj {
			return ri < rj
		}
		return activations[i].Aspect.Orb < activations[j].Aspect.Orb
	})
	return activations
}

// CityActivation intersects the current activations with the natal bodies
// whose lines pass near the city, looks ahead for the city's next window,
// and scores a best-visit recommendation.
func (e *ScoringEngine) CityActivation(ctx context.Context, city model.Location, lines []model.AstroLine, natal []model.PlanetPosition, birthJD float64, now time.Time) (model.CityActivation, error) {
	nearby := FindNearestLines(lines, city.Lat, city.Lon, CityRadiusKm)

	cityBodies := make(map[model.Body]bool, len(nearby))
	for _, n := range nearby {
		cityBodies[n.Body] = true
	}

	var active []model.LineActivation
	for _, a := range e.CurrentActivations(natal, birthJD, now) {
		if cityBodies[a.Aspect.NatalBody] {
			active = append(active, a)
		}
	}

	windows, err := e.Scanner.Scan(ctx, natal, birthJD, now, now.Add(nextWindowHorizon))
	if err != nil {
		return model.CityActivation{}, err
	}

	var cityWindows []model.ActivationWindow
	for _, w := range windows {
		if cityBodies[w.NatalBody] && !w.End.Before(now) {
			cityWindows = append(cityWindows, w)
		}
	}

	activation := model.CityActivation{
		Location:      city,
		NearbyLines:   nearby,
		ActiveAspects: active,
		Overall:       overallStrength(active),
	}
	if len(cityWindows) > 0 {
		next := cityWindows[0]
		activation.NextWindow = &next
	}
	if best, ok := e.bestVisitWindow(cityWindows, nearby); ok {
		activation.BestVisitWindow = &best
	}
	return activation, nil
}

// bestVisitWindow scores every nearby window and returns the top scorer,
// but only when it clears the visit threshold; a weak best window yields no
// recommendation rather than a false positive.
func (e *ScoringEngine) bestVisitWindow(windows []model.ActivationWindow, nearby []model.NearbyLine) (model.ScoredWindow, bool) {
	linesByBody := make(map[model.Body]model.NearbyLine)
	for _, n := range nearby {
		if cur, ok := linesByBody[n.Body]; !ok || n.DistanceKm < cur.DistanceKm {
			linesByBody[n.Body] = n
		}
	}

	var best model.ScoredWindow
	found := false
	for _, w := range windows {
		score := e.visitScore(w, linesByBody)
		if !found || score > best.Score {
			best = model.ScoredWindow{Window: w, Score: score}
			found = true
		}
	}
	if !found || best.Score < e.Weights.VisitThreshold {
		return model.ScoredWindow{}, false
	}
	return best, true
}

func (e *ScoringEngine) visitScore(w model.ActivationWindow, linesByBody map[model.Body]model.NearbyLine) float64 {
	score := e.Weights.MovingBody[w.MovingBody] + e.Weights.Aspect[w.Type]
	if line, ok := linesByBody[w.NatalBody]; ok {
		score += e.Weights.Sentiment[e.Sentiment(line.Body, line.LineType)]
	}
	if w.Source == model.SourceProgression {
		score += e.Weights.ProgressionBonus
	}
	return score
}

// overallStrength derives the summary band: peak on any exact hit, active
// on any strong hit, building on any hit at all, quiet otherwise.
func overallStrength(active []model.LineActivation) model.OverallStrength {
	if len(active) == 0 {
		return model.StrengthQuiet
	}
	strength := model.StrengthBuilding
	for _, a := range active {
		switch a.Intensity {
		case model.IntensityExact:
			return model.StrengthPeak
		case model.IntensityStrong:
			strength = model.StrengthActive
		}
	}
	return strength
}

func intensityRank(i model.Intensity) int {
	switch i {
	case model.IntensityExact:
		return 0
	case model.IntensityStrong:
		return 1
	case model.IntensityModerate:
		return 2
	default:
		return 3
	}
}
