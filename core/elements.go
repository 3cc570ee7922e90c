package core

import "github.com/siderealworks/astrocarto/model"

// element is a single orbital element expressed as a linear function of T,
// Julian centuries since J2000.
type element struct {
	base float64
	rate float64
}

// at evaluates the element at T.
func (e element) at(t float64) float64 {
	return e.base + e.rate*t
}

// OrbitalElements holds the Keplerian elements of one body, each linear in
// T. Angles are degrees, the semi-major axis is in AU. ArgPerihelion is the
// argument of perihelion (longitude of perihelion minus ascending node), so
// the mean anomaly is MeanLongitude - ArgPerihelion - AscendingNode.
type OrbitalElements struct {
	MeanLongitude element
	SemiMajorAxis element
	Eccentricity  element
	Inclination   element
	ArgPerihelion element
	AscendingNode element
}

// orbitalElements is the element table for every Keplerian body. Values for
// the major planets follow the standard low-order approximations; the
// asteroid-point entries are the tuned constants the rest of the engine is
// calibrated against.
var orbitalElements = map[model.Body]OrbitalElements{
	model.Mercury: {
		MeanLongitude: element{252.25032350, 149472.67411175},
		SemiMajorAxis: element{0.38709927, 0.00000037},
		Eccentricity:  element{0.20563593, 0.00001906},
		Inclination:   element{7.00497902, -0.00594749},
		ArgPerihelion: element{29.12703035, 0.28581770},
		AscendingNode: element{48.33076593, -0.12534081},
	},
	model.Venus: {
		MeanLongitude: element{181.97909950, 58517.81538729},
		SemiMajorAxis: element{0.72333566, 0.00000390},
		Eccentricity:  element{0.00677672, -0.00004107},
		Inclination:   element{3.39467605, -0.00078890},
		ArgPerihelion: element{54.92262463, 0.28037747},
		AscendingNode: element{76.67984255, -0.27769418},
	},
	model.Mars: {
		MeanLongitude: element{-4.55343205, 19140.30268499},
		SemiMajorAxis: element{1.52371034, 0.00001847},
		Eccentricity:  element{0.09339410, 0.00007882},
		Inclination:   element{1.84969142, -0.00813131},
		ArgPerihelion: element{-73.50316850, 0.73698431},
		AscendingNode: element{49.55953891, -0.29257343},
	},
	model.Jupiter: {
		MeanLongitude: element{34.39644051, 3034.74612775},
		SemiMajorAxis: element{5.20288700, -0.00011607},
		Eccentricity:  element{0.04838624, -0.00013253},
		Inclination:   element{1.30439695, -0.00183714},
		ArgPerihelion: element{-85.74542926, 0.00783562},
		AscendingNode: element{100.47390909, 0.20469106},
	},
	model.Saturn: {
		MeanLongitude: element{49.95424423, 1222.49362201},
		SemiMajorAxis: element{9.53667594, -0.00125060},
		Eccentricity:  element{0.05386179, -0.00050991},
		Inclination:   element{2.48599187, 0.00193609},
		ArgPerihelion: element{-21.06354617, -0.13029422},
		AscendingNode: element{113.66242448, -0.28867794},
	},
	model.Uranus: {
		MeanLongitude: element{313.23810451, 428.48202785},
		SemiMajorAxis: element{19.18916464, -0.00196176},
		Eccentricity:  element{0.04725744, -0.00004397},
		Inclination:   element{0.77263783, -0.00242939},
		ArgPerihelion: element{96.93735127, 0.36564692},
		AscendingNode: element{74.01692503, 0.04240589},
	},
	model.Neptune: {
		MeanLongitude: element{-55.12002969, 218.45945325},
		SemiMajorAxis: element{30.06992276, 0.00026291},
		Eccentricity:  element{0.00859048, 0.00005105},
		Inclination:   element{1.77004347, 0.00035372},
		ArgPerihelion: element{-86.81946347, -0.31732800},
		AscendingNode: element{131.78422574, -0.00508664},
	},
	model.Pluto: {
		MeanLongitude: element{238.92903833, 145.20780515},
		SemiMajorAxis: element{39.48211675, -0.00031596},
		Eccentricity:  element{0.24882730, 0.00005170},
		Inclination:   element{17.14001206, 0.00004818},
		ArgPerihelion: element{113.76497945, -0.02879460},
		AscendingNode: element{110.30393684, -0.01183482},
	},
	model.Chiron: {
		MeanLongitude: element{207.224, 710.57},
		SemiMajorAxis: element{13.6981, 0},
		Eccentricity:  element{0.3831, 0},
		Inclination:   element{6.9352, 0},
		ArgPerihelion: element{339.214, 0},
		AscendingNode: element{209.352, 0},
	},
	model.Ceres: {
		MeanLongitude: element{153.941, 7824.12},
		SemiMajorAxis: element{2.7675, 0},
		Eccentricity:  element{0.0760, 0},
		Inclination:   element{10.5934, 0},
		ArgPerihelion: element{73.115, 0},
		AscendingNode: element{80.329, 0},
	},
	model.Pallas: {
		MeanLongitude: element{310.208, 7794.30},
		SemiMajorAxis: element{2.7730, 0},
		Eccentricity:  element{0.2299, 0},
		Inclination:   element{34.8329, 0},
		ArgPerihelion: element{309.930, 0},
		AscendingNode: element{173.080, 0},
	},
	model.Vesta: {
		MeanLongitude: element{151.198, 9917.18},
		SemiMajorAxis: element{2.3615, 0},
		Eccentricity:  element{0.0887, 0},
		Inclination:   element{7.1400, 0},
		ArgPerihelion: element{150.728, 0},
		AscendingNode: element{103.810, 0},
	},
}

// linearPoints holds the ecliptic longitudes of the pure linear-rate
// mathematical points, linear in T. The mean lunar node regresses; Lilith
// (the mean lunar apogee) advances.
var linearPoints = map[model.Body]element{
	model.NorthNode: {125.0445222, -1934.1362608},
	model.SouthNode: {305.0445222, -1934.1362608},
	model.Lilith:    {83.3532465, 4069.0137287},
}

// ElementsFor returns the Keplerian elements for a body, with ok=false when
// the body is not propagated from elements.
func ElementsFor(b model.Body) (OrbitalElements, bool) {
	el, ok := orbitalElements[b]
	return el, ok
}
