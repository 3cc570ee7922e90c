package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/siderealworks/astrocarto/model"
)

// DefaultScanStep is the default sampling cadence for window scans.
// Callers wanting a coarser sweep pass 14 days instead.
const DefaultScanStep = 7 * 24 * time.Hour

// gapFactor times the step is the largest gap between consecutive hits that
// still belongs to one window. Retrograde reappearances beyond it open a
// fresh window instead of merging across the gap.
const gapFactor = 2.5

// Scanner samples a date range and merges aspect hits into activation
// windows. It holds no state across Scan calls.
type Scanner struct {
	Policy OrbPolicy
	Step   time.Duration
}

// NewScanner builds a scanner with the given orb policy and the default
// seven-day cadence.
func NewScanner(policy OrbPolicy) *Scanner {
	return &Scanner{Policy: policy, Step: DefaultScanStep}
}

type sampleHit struct {
	at     time.Time
	orb    float64
	maxOrb float64
}

type windowKey struct {
	moving model.Body
	natal  model.Body
	aspect model.AspectType
	source model.AspectSource
}

// Scan samples [start, end] at the scanner's cadence, runs aspect detection
// against both the transit and progression position sets, and merges the
// hits into windows. Long ranges honor ctx cancellation between samples.
func (s *Scanner) Scan(ctx context.Context, natal []model.PlanetPosition, birthJD float64, start, end time.Time) ([]model.ActivationWindow, error) {
	step := s.Step
	if step <= 0 {
		step = DefaultScanStep
	}

	hits := make(map[windowKey][]sampleHit)
	for t := start; !t.After(end); t = t.Add(step) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		targetJD := JulianDayFromTime(t)
		transit := PositionsAt(targetJD)
		progressed := PositionsAt(ProgressedJulianDay(birthJD, targetJD))

		record := func(aspects []model.Aspect) {
			for _, a := range aspects {
				key := windowKey{a.MovingBody, a.NatalBody, a.Type, a.Source}
				hits[key] = append(hits[key], sampleHit{at: t, orb: a.Orb, maxOrb: a.MaxOrb})
			}
		}
		record(DetectAspects(transit, natal, model.SourceTransit, s.Policy))
		record(DetectAspects(progressed, natal, model.SourceProgression, s.Policy))
	}

	maxGap := time.Duration(gapFactor * float64(step))

	var windows []model.ActivationWindow
	for key, series := range hits {
		windows = append(windows, mergeHits(key, series, maxGap)...)
	}

	sort.Slice(windows, func(i, j int) bool {
		if !windows[i].Start.Equal(windows[j].Start) {
			return windows[i].Start.Before(windows[j].Start)
		}
		return windows[i].Description < windows[j].Description
	})
	return windows, nil
}

// mergeHits walks one group's chronological hit series, opening a window at
// the first hit, tracking the minimum-orb sample, and closing whenever the
// gap to the next hit exceeds maxGap or the series ends.
func mergeHits(key windowKey, series []sampleHit, maxGap time.Duration) []model.ActivationWindow {
	if len(series) == 0 {
		return nil
	}
	sort.Slice(series, func(i, j int) bool { return series[i].at.Before(series[j].at) })

	var windows []model.ActivationWindow
	open := series[0]
	last := series[0]
	best := series[0]

	flush := func() {
		windows = append(windows, closeWindow(key, open, last, best))
	}

	for _, hit := range series[1:] {
		if hit.at.Sub(last.at) > maxGap {
			flush()
			open = hit
			best = hit
		} else if hit.orb < best.orb {
			best = hit
		}
		last = hit
	}
	flush()
	return windows
}

func closeWindow(key windowKey, open, last, best sampleHit) model.ActivationWindow {
	return model.ActivationWindow{
		NatalBody:   key.natal,
		MovingBody:  key.moving,
		Type:        key.aspect,
		Source:      key.source,
		Start:       open.at,
		End:         last.at,
		Exact:       best.at,
		MinOrb:      best.orb,
		Description: describeWindow(key),
		WindowType:  classifyWindow(key.moving, key.aspect),
	}
}

func describeWindow(key windowKey) string {
	return fmt.Sprintf("%s %s natal %s (%s)", key.moving, key.aspect, key.natal, key.source)
}

// classifyWindow assigns benefic/evolutionary/neutral: the benefic pair
// with harmonious aspects reads as benefic, the heavy slow bodies as
// evolutionary, everything else as neutral.
func classifyWindow(moving model.Body, aspect model.AspectType) model.WindowType {
	if beneficBodies[moving] && aspect.Harmonious() {
		return model.WindowBenefic
	}
	if heavyBodies[moving] {
		return model.WindowEvolutionary
	}
	return model.WindowNeutral
}
