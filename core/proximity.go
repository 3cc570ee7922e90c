package core

import (
	"math"
	"sort"

	"github.com/siderealworks/astrocarto/model"
)

// EarthRadiusKm is the mean Earth radius used for all distance math.
const EarthRadiusKm = 6371.0

// Influence band and side thresholds, in kilometres.
const (
	influenceVeryStrongKm = 150.0
	influenceStrongKm     = 400.0
	influenceModerateKm   = 800.0
	sideOnKm              = 30.0
)

// FindNearestLines returns, per distinct (body, lineType), the closest
// approach of that pair's segments to the query point, limited to
// maxRadiusKm. Pairs appearing in several segments are deduplicated,
// keeping the globally closest sample. Results are sorted ascending by
// distance.
func FindNearestLines(lines []model.AstroLine, lat, lon, maxRadiusKm float64) []model.NearbyLine {
	type pairKey struct {
		body     model.Body
		lineType model.LineType
	}
	type nearest struct {
		distance float64
		point    model.GeoPoint
	}

	best := make(map[pairKey]nearest)
	for _, line := range lines {
		key := pairKey{line.Body, line.LineType}
		for _, p := range line.Points {
			d := Haversine(lat, lon, p.Lat, p.Lon)
			if d > maxRadiusKm {
				continue
			}
			if cur, ok := best[key]; !ok || d < cur.distance {
				best[key] = nearest{distance: d, point: p}
			}
		}
	}

	results := make([]model.NearbyLine, 0, len(best))
	for key, n := range best {
		results = append(results, model.NearbyLine{
			Body:       key.body,
			LineType:   key.lineType,
			DistanceKm: n.distance,
			Influence:  influenceBand(n.distance),
			Side:       sideOf(lon, n.point.Lon, n.distance),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results
}

// Haversine returns the great-circle distance between two points in km.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * deg2rad
	dLon := (lon2 - lon1) * deg2rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*deg2rad)*math.Cos(lat2*deg2rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func influenceBand(distanceKm float64) model.InfluenceBand {
	switch {
	case distanceKm < influenceVeryStrongKm:
		return model.InfluenceVeryStrong
	case distanceKm < influenceStrongKm:
		return model.InfluenceStrong
	case distanceKm < influenceModerateKm:
		return model.InfluenceModerate
	default:
		return model.InfluenceMild
	}
}

// sideOf classifies the query point relative to the nearest line point:
// "on" inside the sideOnKm band, otherwise east/west by the sign of the
// longitude delta wrapped across the dateline.
func sideOf(queryLon, lineLon, distanceKm float64) string {
	if distanceKm < sideOnKm {
		return "on"
	}
	if wrap180(queryLon-lineLon) > 0 {
		return "east"
	}
	return "west"
}
