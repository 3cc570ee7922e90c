package core

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch.
const J2000 = 2451545.0

// JulianDay converts a Gregorian calendar date plus decimal hours (UT) to a
// Julian Day number. Uses the standard algorithm with January/February
// treated as months 13/14 of the previous year.
func JulianDay(year, month, day int, hours float64) float64 {
	y := float64(year)
	m := float64(month)
	if m <= 2 {
		y -= 1
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
	return jd + hours/24.0
}

// JulianDayFromTime converts a time.Time (interpreted in UTC) to a Julian Day.
func JulianDayFromTime(t time.Time) float64 {
	t = t.UTC()
	hours := float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/3600.0
	return JulianDay(t.Year(), int(t.Month()), t.Day(), hours)
}

// CenturiesSinceJ2000 returns T, the Julian centuries elapsed since J2000.0.
func CenturiesSinceJ2000(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// GreenwichSiderealTime returns GST in degrees, normalized to [0,360).
func GreenwichSiderealTime(jd float64) float64 {
	t := CenturiesSinceJ2000(jd)
	gst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return normalizeDegrees(gst)
}

// Obliquity returns the obliquity of the ecliptic in degrees for the given
// Julian centuries since J2000.
func Obliquity(t float64) float64 {
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.036e-7*t*t*t
}

// LocalToUTC converts a local calendar date and decimal hour at the given
// longitude to UTC, estimating the timezone offset as round(longitude/15).
// No timezone database is consulted; downstream aspect timing is calibrated
// against exactly this approximation, including the calendar rollover at the
// day boundary.
func LocalToUTC(year, month, day int, hours, longitude float64) (int, int, int, float64) {
	offset := math.Round(longitude / 15.0)
	utc := hours - offset

	if utc < 0 {
		utc += 24
		day--
		if day < 1 {
			month--
			if month < 1 {
				month = 12
				year--
			}
			day = daysInMonth(year, month)
		}
	} else if utc >= 24 {
		utc -= 24
		day++
		if day > daysInMonth(year, month) {
			day = 1
			month++
			if month > 12 {
				month = 1
				year++
			}
		}
	}

	return year, month, day, utc
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// normalizeDegrees folds an angle into [0,360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// wrap180 folds an angle into (-180,180].
func wrap180(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg <= 0 {
		deg += 360
	}
	return deg - 180
}

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)
