package core

import (
	"math"

	"github.com/siderealworks/astrocarto/model"
)

// Latitude sampling for the rendered polylines. The horizon lines tighten
// their step beyond ±60° to control curvature error near the poles.
const (
	lineLatMin          = -89.0
	lineLatMax          = 89.0
	meridianLatStep     = 2.0
	horizonLatStep      = 1.0
	horizonLatStepPole  = 0.5
	horizonStepBoundary = 60.0
)

// GenerateLines projects body positions and a Greenwich sidereal time into
// MC/IC/ASC/DSC polylines. Every returned segment honors the antimeridian
// invariant: consecutive points never differ in longitude by more than 180°.
func GenerateLines(positions []model.PlanetPosition, gst float64, source string) []model.AstroLine {
	lines := make([]model.AstroLine, 0, len(positions)*4)
	for _, pos := range positions {
		lines = append(lines, meridianLines(pos, gst, source)...)
		lines = append(lines, horizonLines(pos, gst, source)...)
	}
	return lines
}

// meridianLines renders the MC and IC verticals. The MC longitude is
// RA - GST; the IC sits on the opposite meridian.
func meridianLines(pos model.PlanetPosition, gst float64, source string) []model.AstroLine {
	mcLon := wrap180(pos.RightAscension - gst)
	icLon := wrap180(mcLon + 180)

	lines := make([]model.AstroLine, 0, 2)
	for _, ml := range []struct {
		lineType model.LineType
		lon      float64
	}{
		{model.LineMC, mcLon},
		{model.LineIC, icLon},
	} {
		points := make([]model.GeoPoint, 0, int((lineLatMax-lineLatMin)/meridianLatStep)+1)
		for lat := lineLatMin; lat <= lineLatMax; lat += meridianLatStep {
			points = append(points, model.GeoPoint{Lat: lat, Lon: ml.lon})
		}
		for _, seg := range splitAtAntimeridian(points) {
			lines = append(lines, model.AstroLine{
				Body:     pos.Body,
				LineType: ml.lineType,
				Points:   seg,
				Source:   source,
			})
		}
	}
	return lines
}

// horizonLines renders the ASC and DSC curves. At each sampled latitude the
// hour angle of the horizon crossing solves cos(H) = -tan(lat)·tan(dec);
// latitudes where |cos H| exceeds 1 have no crossing (the body is
// circumpolar there) and the sample is omitted rather than erred.
func horizonLines(pos model.PlanetPosition, gst float64, source string) []model.AstroLine {
	decRad := pos.Declination * deg2rad

	var ascPoints, dscPoints []model.GeoPoint
	lat := lineLatMin
	for lat <= lineLatMax {
		cosH := -math.Tan(lat*deg2rad) * math.Tan(decRad)
		if math.Abs(cosH) <= 1 {
			h := math.Acos(clamp(cosH, -1, 1)) * rad2deg
			ascPoints = append(ascPoints, model.GeoPoint{
				Lat: lat,
				Lon: wrap180(pos.RightAscension - gst - h),
			})
			dscPoints = append(dscPoints, model.GeoPoint{
				Lat: lat,
				Lon: wrap180(pos.RightAscension - gst + h),
			})
		}

		step := horizonLatStep
		if math.Abs(lat) > horizonStepBoundary {
			step = horizonLatStepPole
		}
		lat += step
	}

	var lines []model.AstroLine
	for _, seg := range splitAtAntimeridian(ascPoints) {
		lines = append(lines, model.AstroLine{Body: pos.Body, LineType: model.LineASC, Points: seg, Source: source})
	}
	for _, seg := range splitAtAntimeridian(dscPoints) {
		lines = append(lines, model.AstroLine{Body: pos.Body, LineType: model.LineDSC, Points: seg, Source: source})
	}
	return lines
}

// splitAtAntimeridian breaks a polyline wherever consecutive samples jump
// across the dateline.
func splitAtAntimeridian(points []model.GeoPoint) [][]model.GeoPoint {
	if len(points) == 0 {
		return nil
	}

	var segments [][]model.GeoPoint
	current := []model.GeoPoint{points[0]}
	for i := 1; i < len(points); i++ {
		if math.Abs(points[i].Lon-points[i-1].Lon) > 180 {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, points[i])
	}
	segments = append(segments, current)
	return segments
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
