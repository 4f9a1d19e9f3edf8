package sgp4

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/solar"
)

const (
	astronomicalUnit = 149597870.7 // km
	solarRadius      = 696000.0    // km
)

// SunPositionECI returns the geocentric position of the Sun at t, in km, in
// the equatorial frame of date.
func SunPositionECI(t time.Time) Vector {
	jd := JDay(t)
	ra, dec := solar.ApparentEquatorial(jd)
	dist := solar.Radius(base.J2000Century(jd)) * astronomicalUnit

	return Vector{
		X: dist * dec.Cos() * ra.Cos(),
		Y: dist * dec.Cos() * ra.Sin(),
		Z: dist * dec.Sin(),
	}
}

// IsEclipsed reports whether the satellite at position sat (km, inertial) is
// in the Earth's shadow at t. Partial eclipses count as eclipsed.
func IsEclipsed(sat Vector, t time.Time) bool {
	return eclipseDepth(sat, SunPositionECI(t)) >= 0
}

// eclipseDepth compares the apparent semi-diameters of the Earth and the Sun
// seen from the satellite with the angle between them. Positive is shadow.
func eclipseDepth(sat, sun Vector) float64 {
	r := sat.Norm()
	if r <= ellipsoidA {
		return math.Pi
	}
	toSun := sun.Sub(sat)
	sdEarth := math.Asin(ellipsoidA / r)
	sdSun := math.Asin(solarRadius / toSun.Norm())
	if sdEarth < sdSun {
		return -math.Pi
	}
	return sdEarth - sdSun - angleBetween(toSun, sat.Scale(-1))
}

func angleBetween(a, b Vector) float64 {
	c := a.Dot(b) / (a.Norm() * b.Norm())
	return math.Acos(math.Max(-1, math.Min(1, c)))
}
