package core

import (
	"fmt"
	"math"

	"github.com/siderealworks/astrocarto/model"
)

// Kepler solver limits. Both are fixed: changing either breaks numeric
// reproducibility across platforms.
const (
	keplerMaxIterations = 20
	keplerToleranceDeg  = 1e-8
)

// PositionAt computes one body's geocentric position for a Julian Day.
// ok is false for bodies outside the tracked set.
func PositionAt(body model.Body, jd float64) (model.PlanetPosition, bool) {
	if !body.Valid() {
		return model.PlanetPosition{}, false
	}

	t := CenturiesSinceJ2000(jd)

	var lon, lat float64
	switch body.Strategy() {
	case model.StrategySolar:
		lon, _ = solarPosition(t)
		lat = 0
	case model.StrategyLunar:
		lon, lat = lunarPosition(t)
	case model.StrategyLinear:
		lon = normalizeDegrees(linearPoints[body].at(t))
		lat = 0
	case model.StrategyKepler:
		el, ok := ElementsFor(body)
		if !ok {
			return model.PlanetPosition{}, false
		}
		lon, lat = geocentricFromElements(el, t)
	}

	eps := Obliquity(t)
	ra, dec := eclipticToEquatorial(lon, lat, eps)

	return model.PlanetPosition{
		Body:              body,
		RightAscension:    ra,
		Declination:       dec,
		EclipticLongitude: lon,
	}, true
}

// PositionsAt computes positions for every tracked body at a Julian Day.
// Deterministic: identical input yields bit-identical output.
func PositionsAt(jd float64) []model.PlanetPosition {
	positions := make([]model.PlanetPosition, 0, len(model.AllBodies))
	for _, b := range model.AllBodies {
		if p, ok := PositionAt(b, jd); ok {
			positions = append(positions, p)
		}
	}
	return positions
}

// PositionsForLocal converts a local calendar instant at the given longitude
// to UTC via the round(longitude/15) approximation and computes positions.
func PositionsForLocal(year, month, day int, hours, longitude float64) []model.PlanetPosition {
	y, m, d, h := LocalToUTC(year, month, day, hours, longitude)
	return PositionsAt(JulianDay(y, m, d, h))
}

// ParseBirthInstant parses "YYYY-MM-DD" and "HH:MM" strings into calendar
// components plus decimal hours. Malformed input is the caller's
// responsibility; the error exists only to surface it, not to recover.
func ParseBirthInstant(date, clock string) (year, month, day int, hours float64, err error) {
	if _, err = fmt.Sscanf(date, "%d-%d-%d", &year, &month, &day); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("parse birth date %q: %w", date, err)
	}
	var hh, mm int
	if _, err = fmt.Sscanf(clock, "%d:%d", &hh, &mm); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("parse birth time %q: %w", clock, err)
	}
	return year, month, day, float64(hh) + float64(mm)/60.0, nil
}

// BirthJulianDay resolves birth data to the UTC Julian Day of the birth
// instant, applying the longitude-based timezone estimate.
func BirthJulianDay(birth model.BirthData) (float64, error) {
	year, month, day, hours, err := ParseBirthInstant(birth.Date, birth.Time)
	if err != nil {
		return 0, err
	}
	y, m, d, h := LocalToUTC(year, month, day, hours, birth.Longitude)
	return JulianDay(y, m, d, h), nil
}

// solarPosition returns the Sun's geocentric ecliptic longitude (degrees)
// and distance (AU) using the low-order mean-anomaly/equation-of-center
// series.
func solarPosition(t float64) (float64, float64) {
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := 357.52911 + 35999.05029*t - 0.0001537*t*t
	mRad := m * deg2rad

	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mRad) +
		(0.019993-0.000101*t)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	lon := normalizeDegrees(l0 + c)

	e := 0.016708634 - 0.000042037*t - 0.0000001267*t*t
	v := (m + c) * deg2rad
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	return lon, r
}

// lunarPosition returns the Moon's geocentric ecliptic longitude and
// latitude (degrees) from a handful of the largest periodic terms.
func lunarPosition(t float64) (float64, float64) {
	lp := 218.3164477 + 481267.88123421*t // mean longitude
	d := (297.8501921 + 445267.1114034*t) * deg2rad
	ms := (357.5291092 + 35999.0502909*t) * deg2rad
	mp := (134.9633964 + 477198.8675055*t) * deg2rad
	f := (93.2720950 + 483202.0175233*t) * deg2rad

	lon := lp +
		6.288774*math.Sin(mp) +
		1.274027*math.Sin(2*d-mp) +
		0.658314*math.Sin(2*d) +
		0.213618*math.Sin(2*mp) -
		0.185116*math.Sin(ms) -
		0.114332*math.Sin(2*f)

	lat := 5.128122*math.Sin(f) +
		0.280602*math.Sin(mp+f) +
		0.277693*math.Sin(mp-f)

	return normalizeDegrees(lon), lat
}

// solveKepler runs Newton refinement on Kepler's equation E = M + e*sin(E).
// M is in radians. The iteration cap and tolerance are fixed.
func solveKepler(m, e float64) float64 {
	ecc := m
	for i := 0; i < keplerMaxIterations; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta)*rad2deg < keplerToleranceDeg {
			break
		}
	}
	return ecc
}

// geocentricFromElements propagates two-body Keplerian elements to
// heliocentric coordinates, then shifts to the geocentric frame by
// subtracting Earth's heliocentric position (Earth = Sun + 180 degrees,
// radius from the solar distance formula). Returns ecliptic longitude and
// latitude in degrees.
func geocentricFromElements(el OrbitalElements, t float64) (float64, float64) {
	xh, yh, zh := heliocentricFromElements(el, t)

	sunLon, sunR := solarPosition(t)
	earthLon := (sunLon + 180) * deg2rad
	xe := sunR * math.Cos(earthLon)
	ye := sunR * math.Sin(earthLon)

	xg := xh - xe
	yg := yh - ye
	zg := zh

	lon := normalizeDegrees(math.Atan2(yg, xg) * rad2deg)
	lat := math.Atan2(zg, math.Sqrt(xg*xg+yg*yg)) * rad2deg
	return lon, lat
}

func heliocentricFromElements(el OrbitalElements, t float64) (float64, float64, float64) {
	l := el.MeanLongitude.at(t)
	a := el.SemiMajorAxis.at(t)
	e := el.Eccentricity.at(t)
	inc := el.Inclination.at(t) * deg2rad
	omega := el.ArgPerihelion.at(t)
	node := el.AscendingNode.at(t)

	m := normalizeDegrees(l-omega-node) * deg2rad
	ecc := solveKepler(m, e)

	// True anomaly and radius from the eccentric anomaly.
	v := 2 * math.Atan2(
		math.Sqrt(1+e)*math.Sin(ecc/2),
		math.Sqrt(1-e)*math.Cos(ecc/2),
	)
	r := a * (1 - e*math.Cos(ecc))

	u := v + omega*deg2rad // argument of latitude
	nodeRad := node * deg2rad

	x := r * (math.Cos(nodeRad)*math.Cos(u) - math.Sin(nodeRad)*math.Sin(u)*math.Cos(inc))
	y := r * (math.Sin(nodeRad)*math.Cos(u) + math.Cos(nodeRad)*math.Sin(u)*math.Cos(inc))
	z := r * math.Sin(u) * math.Sin(inc)
	return x, y, z
}

// eclipticToEquatorial rotates ecliptic coordinates through the obliquity.
// All arguments and results are degrees; RA is normalized to [0,360).
func eclipticToEquatorial(lon, lat, eps float64) (float64, float64) {
	lonRad := lon * deg2rad
	latRad := lat * deg2rad
	epsRad := eps * deg2rad

	ra := math.Atan2(
		math.Sin(lonRad)*math.Cos(epsRad)-math.Tan(latRad)*math.Sin(epsRad),
		math.Cos(lonRad),
	) * rad2deg
	dec := math.Asin(
		math.Sin(latRad)*math.Cos(epsRad)+
			math.Cos(latRad)*math.Sin(epsRad)*math.Sin(lonRad),
	) * rad2deg

	return normalizeDegrees(ra), dec
}
