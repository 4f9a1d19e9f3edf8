package sgp4

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrLocationNil             = errors.New("location cannot be nil")
	ErrInvalidLocationLatitude = errors.New("invalid location latitude")
)

// Location represents a ground station or observation point on Earth
type Location struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Altitude  float64 // meters above the ellipsoid
}

// Geodetic returns the location in radians and km.
func (loc *Location) Geodetic() Geodetic {
	return Geodetic{
		Latitude:  loc.Latitude * deg2rad,
		Longitude: loc.Longitude * deg2rad,
		Altitude:  loc.Altitude / 1000.0,
	}
}

func (loc *Location) validate() error {
	if loc == nil {
		return ErrLocationNil
	}
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return errors.Wrapf(ErrInvalidLocationLatitude, "%v", loc.Latitude)
	}
	return nil
}

// TopocentricCoords is the satellite seen from an observer.
type TopocentricCoords struct {
	Azimuth   float64 // degrees clockwise from true North (0° to 360°)
	Elevation float64 // degrees above the local horizon (-90° to 90°)
	Range     float64 // km
	RangeRate float64 // km/s, positive moving away
}

// SatellitePosition defines the geodetic position of the satellite.
type SatellitePosition struct {
	Latitude  float64 // degrees
	Longitude float64 // degrees
	Altitude  float64 // km above the ellipsoid
	Timestamp time.Time
}

// Observation combines satellite position and look angles from a ground station.
type Observation struct {
	SatellitePos SatellitePosition
	LookAngles   TopocentricCoords
}

// PassDataPoint stores the calculated data for a single point during a pass.
type PassDataPoint struct {
	Timestamp time.Time
	Azimuth   float64 // degrees
	Elevation float64 // degrees
	Range     float64 // km
	RangeRate float64 // km/s
	Sunlit    bool
}

// PassDetails stores information about a single satellite pass over a ground station.
type PassDetails struct {
	AOS              time.Time // Acquisition of Signal time
	LOS              time.Time // Loss of Signal time
	AOSAzimuth       float64   // degrees
	LOSAzimuth       float64   // degrees
	MaxElevation     float64   // degrees
	MaxElevationAz   float64   // degrees
	MaxElevationTime time.Time
	AOSObservation   Observation
	LOSObservation   Observation
	MaxElObservation Observation
	Duration         time.Duration
	DataPoints       []PassDataPoint
}

// GetLookAngle returns the satellite's look angles from loc and its
// geodetic position, sv being the inertial state at t.
func (sv *StateVector) GetLookAngle(loc *Location, t time.Time) (*Observation, error) {
	if err := loc.validate(); err != nil {
		return nil, err
	}

	gmst := GMST(t)
	observer := loc.Geodetic()
	sat := sv.Position()

	look := LookAngles(observer, ECIToECEF(sat, gmst))

	// range rate in the inertial frame, the observer moving with the Earth
	obs := ECEFToECI(GeodeticToECEF(observer), gmst)
	obsVel := Vector{X: -we * obs.Y, Y: we * obs.X}
	rel := sat.Sub(obs)
	var rangeRate float64
	if n := rel.Norm(); n > 0 {
		rangeRate = rel.Dot(sv.Velocity().Sub(obsVel)) / n
	}

	g := ECIToGeodetic(sat, gmst)
	return &Observation{
		SatellitePos: SatellitePosition{
			Latitude:  g.Latitude * rad2deg,
			Longitude: g.Longitude * rad2deg,
			Altitude:  g.Altitude,
			Timestamp: t,
		},
		LookAngles: TopocentricCoords{
			Azimuth:   math.Mod(look.Azimuth*rad2deg, 360),
			Elevation: look.Elevation * rad2deg,
			Range:     look.Range,
			RangeRate: rangeRate,
		},
	}, nil
}
