package core

import (
	"math"
	"sort"

	"github.com/siderealworks/astrocarto/model"
)

// AngularSeparation returns the shortest-path separation of two ecliptic
// longitudes, in [0,180]. Symmetric in its arguments.
func AngularSeparation(a, b float64) float64 {
	return math.Abs(wrap180(a - b))
}

// DetectAspects matches every (moving, natal) pair against the five
// Ptolemaic angles under the orb policy. Progression self-aspects (a
// progressed body against its own natal position) are skipped: the
// separation is near zero for most of a lifetime and carries no signal.
// Results are sorted tightest orb first.
func DetectAspects(moving, natal []model.PlanetPosition, source model.AspectSource, policy OrbPolicy) []model.Aspect {
	var aspects []model.Aspect
	for _, m := range moving {
		for _, n := range natal {
			if source == model.SourceProgression && m.Body == n.Body {
				continue
			}

			sep := AngularSeparation(m.EclipticLongitude, n.EclipticLongitude)
			for _, aspectType := range model.AllAspects {
				maxOrb := policy.MaxOrb(m.Body, aspectType, source)
				orb := math.Abs(sep - aspectType.Angle())
				if orb > maxOrb {
					continue
				}

				aspects = append(aspects, model.Aspect{
					MovingBody: m.Body,
					NatalBody:  n.Body,
					Type:       aspectType,
					Source:     source,
					Orb:        orb,
					MaxOrb:     maxOrb,
					Applying:   isApplying(m.EclipticLongitude, n.EclipticLongitude, aspectType),
				})
			}
		}
	}

	sort.Slice(aspects, func(i, j int) bool {
		return aspects[i].Orb < aspects[j].Orb
	})
	return aspects
}

// isApplying reports whether the moving body is still approaching the exact
// aspect longitude: the sign of the signed offset from the nearer exact
// point decides, negative meaning the exact degree is still ahead.
func isApplying(movingLon, natalLon float64, aspectType model.AspectType) bool {
	angle := aspectType.Angle()
	ahead := normalizeDegrees(natalLon + angle)
	behind := normalizeDegrees(natalLon - angle)

	exact := ahead
	if math.Abs(wrap180(movingLon-behind)) < math.Abs(wrap180(movingLon-ahead)) {
		exact = behind
	}
	return wrap180(movingLon-exact) < 0
}

// IntensityFor bands an orb against its effective limit. The limit is
// floored at half a degree so near-zero tuned orbs do not divide away the
// banding.
func IntensityFor(orb, maxOrb float64) model.Intensity {
	ratio := orb / math.Max(maxOrb, 0.5)
	switch {
	case ratio < 0.1:
		return model.IntensityExact
	case ratio < 0.4:
		return model.IntensityStrong
	case ratio < 0.7:
		return model.IntensityModerate
	default:
		return model.IntensityFading
	}
}
