package sgp4

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

func assertVector(t *testing.T, want, got Vector, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func TestVectorOps(t *testing.T) {
	a := Vector{X: 3, Y: 4, Z: 12}
	b := Vector{X: 1, Y: -2, Z: 0.5}

	assert.InDelta(t, 13.0, a.Norm(), 1e-12)
	assert.Equal(t, Vector{X: 4, Y: 2, Z: 12.5}, a.Add(b))
	assert.Equal(t, Vector{X: 2, Y: 6, Z: 11.5}, a.Sub(b))
	assert.Equal(t, Vector{X: 6, Y: 8, Z: 24}, a.Scale(2))
	assert.Equal(t, 1.0, a.Dot(b))
	// operands are not modified
	assert.Equal(t, Vector{X: 3, Y: 4, Z: 12}, a)
}

func TestJulianDates(t *testing.T) {
	assert.InDelta(t, 2451545.0, JDay(j2000), 1e-9)
	assert.InDelta(t, 2451545.0, epochJD(2000, 1.5), 1e-9)
	assert.InDelta(t, 2444238.5, epochJD(1980, 0), 1e-9)
	assert.WithinDuration(t, j2000, TimeFromJD(2451545.0), time.Millisecond)

	// a non UTC location gives the same instant
	paris := time.FixedZone("CET", 3600)
	assert.InDelta(t, JDay(j2000), JDay(j2000.In(paris)), 1e-9)

	assert.Equal(t, 2056, fullYear(56))
	assert.Equal(t, 1957, fullYear(57))
	assert.Equal(t, 1980, fullYear(80))
}

func TestGMST(t *testing.T) {
	assert.InDelta(t, GSTime(2451545.0), GMST(j2000), 1e-9)
	// one sidereal day later the angle is back
	sidereal := j2000.Add(time.Duration(86164.0905 * float64(time.Second)))
	assert.InDelta(t, GMST(j2000), GMST(sidereal), 1e-5)
}

func TestFrameRotations(t *testing.T) {
	v := Vector{X: 1, Y: 0, Z: 5}
	assertVector(t, Vector{X: 0, Y: -1, Z: 5}, ECIToECEF(v, math.Pi/2), 1e-12)
	assertVector(t, Vector{X: 0, Y: 1, Z: 5}, ECEFToECI(v, math.Pi/2), 1e-12)

	p := Vector{X: -4400.594, Y: 1932.870, Z: 4760.712}
	for _, g := range []float64{0, 0.3, 2, 4.5, 6.2} {
		assertVector(t, p, ECEFToECI(ECIToECEF(p, g), g), 1e-9, "gmst %v", g)
		assert.InDelta(t, p.Norm(), ECIToECEF(p, g).Norm(), 1e-9)
	}
}

func TestGeodeticToECEF(t *testing.T) {
	assertVector(t, Vector{X: ellipsoidA}, GeodeticToECEF(Geodetic{}), 1e-9)
	assertVector(t, Vector{Y: ellipsoidA + 1}, GeodeticToECEF(Geodetic{Longitude: math.Pi / 2, Altitude: 1}), 1e-9)
	assertVector(t, Vector{Z: ellipsoidB}, GeodeticToECEF(Geodetic{Latitude: math.Pi / 2}), 1e-6)
	assertVector(t, Vector{Z: -ellipsoidB - 2}, GeodeticToECEF(Geodetic{Latitude: -math.Pi / 2, Altitude: 2}), 1e-6)
}

func TestToGeodeticRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		lat, lon, alt float64 // degrees, km
	}{
		{"equator prime meridian", 0, 0, 0},
		{"equator 90E", 0, 90, 0},
		{"north pole", 90, 0, 700},
		{"south pole", -90, 180, 200},
		{"mid latitude", 34.35, 46.30, 100},
		{"southern west", -22.5, -75.25, 50.5},
		{"leo", 51.6, -125.3, 418},
		{"geo", 0.01, 75, 35786},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Geodetic{Latitude: tt.lat * deg2rad, Longitude: tt.lon * deg2rad, Altitude: tt.alt}
			eci := Eci{DateTime: j2000, Position: ECEFToECI(GeodeticToECEF(g), GMST(j2000))}

			lat, lon, alt := eci.ToGeodetic()
			assert.InDelta(t, tt.lat, lat, 1e-6)
			assert.InDelta(t, tt.alt, alt, 1e-4)
			if math.Abs(tt.lat) < 89.999 {
				d := math.Abs(lon - tt.lon)
				if d > 180 {
					d = 360 - d
				}
				assert.Less(t, d, 1e-6, "longitude %v, want %v", lon, tt.lon)
			}
		})
	}
}

func TestLookAngles(t *testing.T) {
	observer := Geodetic{}

	zenith := LookAngles(observer, Vector{X: ellipsoidA + 500})
	assert.InDelta(t, math.Pi/2, zenith.Elevation, 1e-12)
	assert.InDelta(t, 500, zenith.Range, 1e-9)

	east := LookAngles(observer, Vector{X: ellipsoidA, Y: 1000})
	assert.InDelta(t, math.Pi/2, east.Azimuth, 1e-12)
	assert.InDelta(t, 0, east.Elevation, 1e-12)

	north := LookAngles(observer, Vector{X: ellipsoidA, Y: 100, Z: 1000})
	assert.InDelta(t, math.Atan2(100, 1000), north.Azimuth, 1e-12)

	west := LookAngles(observer, Vector{X: ellipsoidA + 100, Y: -1000})
	assert.InDelta(t, 3*math.Pi/2, west.Azimuth, 1e-12)
	assert.Greater(t, west.Elevation, 0.0)

	// below the horizon: the antipode
	below := LookAngles(observer, Vector{X: -ellipsoidA})
	assert.InDelta(t, -math.Pi/2, below.Elevation, 1e-9)

	top := Topocentric(Geodetic{Latitude: math.Pi / 2}, Vector{Z: ellipsoidB + 10})
	assert.InDelta(t, 10, top.Zenith, 1e-6)
	assert.InDelta(t, 0, top.South, 1e-6)
	assert.InDelta(t, 0, top.East, 1e-6)
}

func TestDopplerFactor(t *testing.T) {
	observer := Vector{X: 6378}

	receding := Eci{Position: Vector{X: 7000}, Velocity: Vector{X: 7}}
	assert.InDelta(t, 1+7/speedOfLight, DopplerFactor(observer, receding), 1e-12)

	approaching := Eci{Position: Vector{X: 7000}, Velocity: Vector{X: -7}}
	assert.InDelta(t, 1+7/speedOfLight, DopplerFactor(observer, approaching), 1e-12)

	tangential := Eci{Position: Vector{X: 7000}, Velocity: Vector{Y: 7.5}}
	f := DopplerFactor(observer, tangential)
	assert.GreaterOrEqual(t, f, 1.0)
	assert.Less(t, f, 1+0.1/speedOfLight)
}
