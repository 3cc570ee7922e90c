package core

import (
	"math"
	"testing"

	"github.com/siderealworks/astrocarto/model"
)

func TestGenerateLines_MeridianSanity(t *testing.T) {
	// A body whose RA equals GST culminates on the Greenwich meridian:
	// MC longitude ~0, IC on the opposite meridian.
	pos := model.PlanetPosition{Body: model.Sun, RightAscension: 100, Declination: 10}
	lines := GenerateLines([]model.PlanetPosition{pos}, 100, "natal")

	var sawMC, sawIC bool
	for _, line := range lines {
		switch line.LineType {
		case model.LineMC:
			sawMC = true
			for _, p := range line.Points {
				if math.Abs(p.Lon) > 1e-9 {
					t.Fatalf("MC longitude = %v, want 0", p.Lon)
				}
			}
		case model.LineIC:
			sawIC = true
			for _, p := range line.Points {
				if math.Abs(math.Abs(p.Lon)-180) > 1e-9 {
					t.Fatalf("IC longitude = %v, want ±180", p.Lon)
				}
			}
		}
	}
	if !sawMC || !sawIC {
		t.Fatalf("missing MC or IC lines: MC=%v IC=%v", sawMC, sawIC)
	}
}

func TestGenerateLines_DatelineIntegrity(t *testing.T) {
	positions := PositionsAt(birthScenarioJD(t))
	gst := GreenwichSiderealTime(birthScenarioJD(t))
	lines := GenerateLines(positions, gst, "natal")
	if len(lines) == 0 {
		t.Fatalf("no lines generated")
	}

	for _, line := range lines {
		for i := 1; i < len(line.Points); i++ {
			delta := math.Abs(line.Points[i].Lon - line.Points[i-1].Lon)
			if delta > 180 {
				t.Fatalf("%s %s segment jumps %v degrees of longitude",
					line.Body, line.LineType, delta)
			}
		}
	}
}

func TestGenerateLines_AllFourAnglesPerBody(t *testing.T) {
	positions := PositionsAt(birthScenarioJD(t))
	gst := GreenwichSiderealTime(birthScenarioJD(t))
	lines := GenerateLines(positions, gst, "natal")

	byBody := make(map[model.Body]map[model.LineType]bool)
	for _, line := range lines {
		if byBody[line.Body] == nil {
			byBody[line.Body] = make(map[model.LineType]bool)
		}
		byBody[line.Body][line.LineType] = true
	}
	for _, b := range model.AllBodies {
		for _, lt := range []model.LineType{model.LineMC, model.LineIC, model.LineASC, model.LineDSC} {
			if !byBody[b][lt] {
				t.Fatalf("body %s missing %s line", b, lt)
			}
		}
	}
}

func TestHorizonLines_OmitCircumpolarLatitudes(t *testing.T) {
	// At declination 60 the horizon crossing disappears above |lat| = 30:
	// |cos H| = |tan(lat) * tan(60)| > 1 there. Those samples must be
	// omitted, not erred.
	pos := model.PlanetPosition{Body: model.Vesta, RightAscension: 50, Declination: 60}
	lines := GenerateLines([]model.PlanetPosition{pos}, 0, "")

	for _, line := range lines {
		if line.LineType != model.LineASC && line.LineType != model.LineDSC {
			continue
		}
		if len(line.Points) == 0 {
			t.Fatalf("%s line has no points at all", line.LineType)
		}
		for _, p := range line.Points {
			if math.Abs(p.Lat) > 31 {
				t.Fatalf("%s sample at circumpolar latitude %v", line.LineType, p.Lat)
			}
		}
	}
}

func TestHorizonLines_TightenStepNearPoles(t *testing.T) {
	// A low-declination body crosses the horizon at every latitude; beyond
	// ±60 the sampling step halves.
	pos := model.PlanetPosition{Body: model.Mercury, RightAscension: 10, Declination: 1}
	lines := GenerateLines([]model.PlanetPosition{pos}, 0, "")

	for _, line := range lines {
		if line.LineType != model.LineASC {
			continue
		}
		all := line.Points
		for i := 1; i < len(all); i++ {
			gap := all[i].Lat - all[i-1].Lat
			if all[i-1].Lat > 60.5 && gap > 0.5+1e-9 {
				t.Fatalf("latitude step %v beyond 60, want 0.5", gap)
			}
		}
	}
}

func TestSplitAtAntimeridian(t *testing.T) {
	points := []model.GeoPoint{
		{Lat: 0, Lon: 170},
		{Lat: 1, Lon: 178},
		{Lat: 2, Lon: -179},
		{Lat: 3, Lon: -170},
	}
	segments := splitAtAntimeridian(points)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if len(segments[0]) != 2 || len(segments[1]) != 2 {
		t.Fatalf("unexpected segment sizes: %d and %d", len(segments[0]), len(segments[1]))
	}
}
