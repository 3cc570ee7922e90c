package core

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/siderealworks/astrocarto/model"
)

// Synthesis spans offered to callers.
const (
	SpanMonth   = 30 * 24 * time.Hour
	SpanQuarter = 90 * 24 * time.Hour
	SpanYear    = 365 * 24 * time.Hour
)

// halfInfluenceKm is the distance at which a line's influence on a
// location halves in synthesis scoring.
const halfInfluenceKm = 310.0

// synthesisTopN caps each ranked synthesis list.
const synthesisTopN = 12

// TransitSynthesis scans all windows across the span and scores every
// candidate location twice: an "optimal" aggregate over benefic harmonious
// windows and an independent "intense" aggregate over heavy-body windows,
// each weighted by exponential distance decay from the location to the
// relevant natal lines. Returns the top locations per category with a
// representative best window each.
func (e *ScoringEngine) TransitSynthesis(ctx context.Context, locations []model.Location, lines []model.AstroLine, natal []model.PlanetPosition, birthJD float64, now time.Time, span time.Duration) (model.Synthesis, error) {
	windows, err := e.Scanner.Scan(ctx, natal, birthJD, now, now.Add(span))
	if err != nil {
		return model.Synthesis{}, err
	}

	scores, err := e.scoreLocations(ctx, locations, lines, windows)
	if err != nil {
		return model.Synthesis{}, err
	}

	return model.Synthesis{
		Optimal: rankEntries(scores, func(s locationScore) (float64, model.ActivationWindow, bool) {
			return s.optimal, s.bestOptimal, s.hasOptimal
		}),
		Intense: rankEntries(scores, func(s locationScore) (float64, model.ActivationWindow, bool) {
			return s.intense, s.bestIntense, s.hasIntense
		}),
	}, nil
}

type locationScore struct {
	location     model.Location
	optimal      float64
	intense      float64
	bestOptimal  model.ActivationWindow
	bestIntense  model.ActivationWindow
	bestOptimalC float64
	bestIntenseC float64
	hasOptimal   bool
	hasIntense   bool
}

// scoreLocations fans the per-location scoring out over a bounded worker
// pool; every location is independent, so only the final ordering matters
// and rankEntries re-sorts deterministically.
func (e *ScoringEngine) scoreLocations(ctx context.Context, locations []model.Location, lines []model.AstroLine, windows []model.ActivationWindow) ([]locationScore, error) {
	if len(locations) == 0 {
		return nil, nil
	}

	workers := runtime.NumCPU()
	if workers > len(locations) {
		workers = len(locations)
	}

	jobs := make(chan model.Location, workers*2)
	results := make(chan locationScore, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for loc := range jobs {
				select {
				case results <- e.scoreLocation(loc, lines, windows):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, loc := range locations {
			select {
			case jobs <- loc:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	scores := make([]locationScore, 0, len(locations))
	for s := range results {
		scores = append(scores, s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (e *ScoringEngine) scoreLocation(loc model.Location, lines []model.AstroLine, windows []model.ActivationWindow) locationScore {
	nearby := FindNearestLines(lines, loc.Lat, loc.Lon, CityRadiusKm)

	// Closest line distance per natal body; influence decays from there.
	proximity := make(map[model.Body]float64)
	for _, n := range nearby {
		factor := math.Exp2(-n.DistanceKm / halfInfluenceKm)
		if factor > proximity[n.Body] {
			proximity[n.Body] = factor
		}
	}

	score := locationScore{location: loc}
	for _, w := range windows {
		factor, ok := proximity[w.NatalBody]
		if !ok {
			continue
		}

		if beneficBodies[w.MovingBody] && w.Type.Harmonious() {
			c := factor * (1 + e.Weights.MovingBody[w.MovingBody] + e.Weights.Aspect[w.Type])
			score.optimal += c
			if !score.hasOptimal || c > score.bestOptimalC {
				score.bestOptimal = w
				score.hasOptimal = true
				score.bestOptimalC = c
			}
		}
		if heavyBodies[w.MovingBody] {
			c := factor * (1 + math.Abs(e.Weights.MovingBody[w.MovingBody]) + math.Abs(e.Weights.Aspect[w.Type]))
			score.intense += c
			if !score.hasIntense || c > score.bestIntenseC {
				score.bestIntense = w
				score.hasIntense = true
				score.bestIntenseC = c
			}
		}
	}
	return score
}

func rankEntries(scores []locationScore, extract func(locationScore) (float64, model.ActivationWindow, bool)) []model.SynthesisEntry {
	entries := make([]model.SynthesisEntry, 0, len(scores))
	for _, s := range scores {
		value, best, ok := extract(s)
		if !ok || value <= 0 {
			continue
		}
		entries = append(entries, model.SynthesisEntry{
			Location:   s.location,
			Score:      value,
			BestWindow: best,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Location.Name < entries[j].Location.Name
	})
	if len(entries) > synthesisTopN {
		entries = entries[:synthesisTopN]
	}
	return entries
}
