package model

// PlanetPosition is a body's computed position for one instant. Values are
// degrees; RightAscension and EclipticLongitude are normalized to [0,360),
// Declination to [-90,90]. Positions are recomputed per query and never
// mutated.
type PlanetPosition struct {
	Body              Body    `json:"body"`
	RightAscension    float64 `json:"rightAscension"`
	Declination       float64 `json:"declination"`
	EclipticLongitude float64 `json:"eclipticLongitude"`
}

// BirthData is the caller-validated birth instant and place. Date is
// "YYYY-MM-DD", Time is "HH:MM" local time at the birth longitude.
type BirthData struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
