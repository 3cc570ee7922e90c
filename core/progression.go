package core

import "github.com/siderealworks/astrocarto/model"

// daysPerYear is the day-for-a-year progression rate.
const daysPerYear = 365.25

// ProgressedJulianDay maps a birth instant and a target instant (both as
// Julian Days) to the symbolic progressed instant: one day after birth
// stands for one year of life.
func ProgressedJulianDay(birthJD, targetJD float64) float64 {
	return birthJD + (targetJD-birthJD)/daysPerYear
}

// ProgressedPositions computes the progressed positions for a birth chart
// at the target instant. The progressed date is evaluated at birth local
// time, then fed to the ephemeris as-is.
func ProgressedPositions(birthJD, targetJD float64) []model.PlanetPosition {
	return PositionsAt(ProgressedJulianDay(birthJD, targetJD))
}
