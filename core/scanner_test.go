package core

import (
	"context"
	"testing"
	"time"

	"github.com/siderealworks/astrocarto/model"
)

func TestMergeHits_SplitsOnGap(t *testing.T) {
	key := windowKey{model.Saturn, model.Sun, model.Conjunction, model.SourceTransit}
	day := 24 * time.Hour
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Two passes of the same aspect, as a retrograde reappearance would
	// produce: hits at days 0/7/14, then again at days 70/77.
	series := []sampleHit{
		{at: base, orb: 1.5},
		{at: base.Add(7 * day), orb: 0.3},
		{at: base.Add(14 * day), orb: 1.1},
		{at: base.Add(70 * day), orb: 0.9},
		{at: base.Add(77 * day), orb: 0.2},
	}

	windows := mergeHits(key, series, time.Duration(gapFactor*float64(7*day)))
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2 distinct passes", len(windows))
	}

	first, second := windows[0], windows[1]
	if !first.Start.Equal(base) || !first.End.Equal(base.Add(14*day)) {
		t.Fatalf("first window [%v, %v], want [day 0, day 14]", first.Start, first.End)
	}
	if !first.Exact.Equal(base.Add(7 * day)) {
		t.Fatalf("first window exact = %v, want the minimum-orb sample at day 7", first.Exact)
	}
	if !second.Start.Equal(base.Add(70*day)) || !second.Exact.Equal(base.Add(77*day)) {
		t.Fatalf("second window start %v exact %v", second.Start, second.Exact)
	}
}

func TestMergeHits_KeepsWindowAcrossSmallGap(t *testing.T) {
	key := windowKey{model.Jupiter, model.Moon, model.Trine, model.SourceTransit}
	day := 24 * time.Hour
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// Gap of 14 days with a 7-day step stays under the 2.5x threshold.
	series := []sampleHit{
		{at: base, orb: 2.0},
		{at: base.Add(14 * day), orb: 0.5},
	}
	windows := mergeHits(key, series, time.Duration(gapFactor*float64(7*day)))
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1 across a sub-threshold gap", len(windows))
	}
}

func TestScan_WindowContainment(t *testing.T) {
	birthJD := birthScenarioJD(t)
	natal := PositionsAt(birthJD)
	scanner := NewScanner(DefaultOrbPolicy())

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windows, err := scanner.Scan(context.Background(), natal, birthJD, start, start.AddDate(0, 6, 0))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(windows) == 0 {
		t.Fatalf("six months of transits should produce at least one window")
	}

	for _, w := range windows {
		if w.Exact.Before(w.Start) || w.Exact.After(w.End) {
			t.Fatalf("window %q exact %v outside [%v, %v]",
				w.Description, w.Exact, w.Start, w.End)
		}
		if w.Start.After(w.End) {
			t.Fatalf("window %q has start after end", w.Description)
		}
		if w.WindowType == "" {
			t.Fatalf("window %q not classified", w.Description)
		}
	}
}

func TestScan_Deterministic(t *testing.T) {
	birthJD := birthScenarioJD(t)
	natal := PositionsAt(birthJD)
	scanner := NewScanner(DefaultOrbPolicy())

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	first, err := scanner.Scan(context.Background(), natal, birthJD, start, end)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	second, err := scanner.Scan(context.Background(), natal, birthJD, start, end)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("scan lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("window %d differs between identical scans", i)
		}
	}
}

func TestScan_HonorsCancellation(t *testing.T) {
	birthJD := birthScenarioJD(t)
	natal := PositionsAt(birthJD)
	scanner := NewScanner(DefaultOrbPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := scanner.Scan(ctx, natal, birthJD, start, start.AddDate(1, 0, 0)); err == nil {
		t.Fatalf("expected error from a cancelled scan")
	}
}

func TestClassifyWindow(t *testing.T) {
	cases := []struct {
		moving model.Body
		aspect model.AspectType
		want   model.WindowType
	}{
		{model.Jupiter, model.Trine, model.WindowBenefic},
		{model.Venus, model.Conjunction, model.WindowBenefic},
		{model.Jupiter, model.Square, model.WindowNeutral},
		{model.Saturn, model.Trine, model.WindowEvolutionary},
		{model.Pluto, model.Square, model.WindowEvolutionary},
		{model.Mars, model.Square, model.WindowNeutral},
	}
	for _, c := range cases {
		if got := classifyWindow(c.moving, c.aspect); got != c.want {
			t.Fatalf("classifyWindow(%s, %s) = %q, want %q", c.moving, c.aspect, got, c.want)
		}
	}
}

func TestScan_CoarserStep(t *testing.T) {
	birthJD := birthScenarioJD(t)
	natal := PositionsAt(birthJD)

	scanner := NewScanner(DefaultOrbPolicy())
	scanner.Step = 14 * 24 * time.Hour

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	windows, err := scanner.Scan(context.Background(), natal, birthJD, start, start.AddDate(0, 6, 0))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for _, w := range windows {
		if w.Exact.Before(w.Start) || w.Exact.After(w.End) {
			t.Fatalf("window %q violates containment at 14-day cadence", w.Description)
		}
	}
}
