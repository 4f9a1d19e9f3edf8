package sgp4

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JDay returns the Julian date of t.
func JDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// TimeFromJD returns the UTC time of a Julian date.
func TimeFromJD(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// epochJD returns the Julian date of a TLE style epoch: a full year and a
// fractional day of year, day 1.0 being Jan 1 0h.
func epochJD(year int, day float64) float64 {
	return julian.CalendarGregorianToJD(year, 1, 0) + day
}

// fullYear expands a two digit TLE year, 57-99 being the 1900s.
func fullYear(yy int) int {
	if yy < 57 {
		return 2000 + yy
	}
	return 1900 + yy
}
