package sgp4

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Vector is a cartesian triple, in km or km/s depending on use.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) slice() []float64 { return []float64{v.X, v.Y, v.Z} }

func vectorOf(s []float64) Vector { return Vector{X: s[0], Y: s[1], Z: s[2]} }

// Norm returns the euclidean length of v.
func (v Vector) Norm() float64 {
	return floats.Norm(v.slice(), 2)
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	s := v.slice()
	floats.Add(s, o.slice())
	return vectorOf(s)
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	s := v.slice()
	floats.Sub(s, o.slice())
	return vectorOf(s)
}

// Scale returns f * v.
func (v Vector) Scale(f float64) Vector {
	s := v.slice()
	floats.Scale(f, s)
	return vectorOf(s)
}

// Dot returns the scalar product of v and o.
func (v Vector) Dot(o Vector) float64 {
	return floats.Dot(v.slice(), o.slice())
}

// Eci is a timestamped TEME state.
type Eci struct {
	DateTime time.Time
	Position Vector // km
	Velocity Vector // km/s
}

// Geodetic is a point on or above the WGS-84 ellipsoid. Angles are radians,
// Altitude is km.
type Geodetic struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// Topo is a vector in the observer's south-east-zenith frame.
type Topo struct {
	South, East, Zenith float64
}

// LookAngle is azimuth (from north, clockwise) and elevation in radians, and
// range in km.
type LookAngle struct {
	Azimuth   float64
	Elevation float64
	Range     float64
}

// GMST returns the Greenwich mean sidereal time at t in radians.
func GMST(t time.Time) float64 {
	return GSTime(JDay(t))
}

// ECIToECEF rotates an inertial vector into the Earth-fixed frame.
func ECIToECEF(eci Vector, gmst float64) Vector {
	s, c := math.Sincos(gmst)
	return Vector{
		X: eci.X*c + eci.Y*s,
		Y: -eci.X*s + eci.Y*c,
		Z: eci.Z,
	}
}

// ECEFToECI is the inverse of ECIToECEF.
func ECEFToECI(ecef Vector, gmst float64) Vector {
	s, c := math.Sincos(gmst)
	return Vector{
		X: ecef.X*c - ecef.Y*s,
		Y: ecef.X*s + ecef.Y*c,
		Z: ecef.Z,
	}
}

// GeodeticToECEF returns the Earth-fixed position of g in km.
func GeodeticToECEF(g Geodetic) Vector {
	e2 := ellipsoidF * (2 - ellipsoidF)
	sinLat, cosLat := math.Sincos(g.Latitude)
	sinLon, cosLon := math.Sincos(g.Longitude)
	n := ellipsoidA / math.Sqrt(1-e2*sinLat*sinLat)

	return Vector{
		X: (n + g.Altitude) * cosLat * cosLon,
		Y: (n + g.Altitude) * cosLat * sinLon,
		Z: (n*(1-e2) + g.Altitude) * sinLat,
	}
}

// ECIToGeodetic converts an inertial position to geodetic coordinates at the
// given sidereal time. Longitude is wrapped to [-pi, pi].
func ECIToGeodetic(pos Vector, gmst float64) Geodetic {
	const iterations = 20
	e2 := ellipsoidF * (2 - ellipsoidF)

	lon := wrapLongitude(math.Atan2(pos.Y, pos.X) - gmst)
	r := math.Hypot(pos.X, pos.Y)
	lat := math.Atan2(pos.Z, r)

	var c float64
	for i := 0; i < iterations; i++ {
		sinLat := math.Sin(lat)
		c = 1 / math.Sqrt(1-e2*sinLat*sinLat)
		lat = math.Atan2(pos.Z+ellipsoidA*c*e2*sinLat, r)
	}

	var alt float64
	if cosLat := math.Cos(lat); math.Abs(cosLat) > 1e-10 {
		alt = r/cosLat - ellipsoidA*c
	} else {
		// polar axis
		alt = math.Abs(pos.Z) - ellipsoidB
	}
	return Geodetic{Latitude: lat, Longitude: lon, Altitude: alt}
}

// ToGeodetic returns latitude and longitude in degrees and altitude in km.
func (eci Eci) ToGeodetic() (lat, lon, alt float64) {
	g := ECIToGeodetic(eci.Position, GMST(eci.DateTime))
	return g.Latitude * rad2deg, g.Longitude * rad2deg, g.Altitude
}

// Topocentric expresses the Earth-fixed satellite position sat relative to
// observer in the south-east-zenith frame.
func Topocentric(observer Geodetic, sat Vector) Topo {
	rel := sat.Sub(GeodeticToECEF(observer))
	sinLat, cosLat := math.Sincos(observer.Latitude)
	sinLon, cosLon := math.Sincos(observer.Longitude)

	return Topo{
		South:  sinLat*cosLon*rel.X + sinLat*sinLon*rel.Y - cosLat*rel.Z,
		East:   -sinLon*rel.X + cosLon*rel.Y,
		Zenith: cosLat*cosLon*rel.X + cosLat*sinLon*rel.Y + sinLat*rel.Z,
	}
}

// LookAngles returns the look angles from observer to the Earth-fixed
// satellite position sat.
func LookAngles(observer Geodetic, sat Vector) LookAngle {
	top := Topocentric(observer, sat)
	rng := math.Sqrt(top.South*top.South + top.East*top.East + top.Zenith*top.Zenith)
	if rng == 0 {
		return LookAngle{Elevation: math.Pi / 2}
	}
	return LookAngle{
		Azimuth:   math.Atan2(-top.East, top.South) + math.Pi,
		Elevation: math.Asin(top.Zenith / rng),
		Range:     rng,
	}
}

func wrapLongitude(lon float64) float64 {
	lon = math.Mod(lon, twoPi)
	if lon > math.Pi {
		lon -= twoPi
	} else if lon < -math.Pi {
		lon += twoPi
	}
	return lon
}
