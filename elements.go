package sgp4

import (
	"math"

	"github.com/pkg/errors"
)

// OpsMode selects between the historical AFSPC operation and the improved
// (modern) variant of a few formulas, mostly sidereal time at epoch.
type OpsMode byte

const (
	OpsImproved OpsMode = 'i'
	OpsAFSPC    OpsMode = 'a'
)

func (m OpsMode) String() string {
	switch m {
	case OpsAFSPC:
		return "afspc"
	case OpsImproved:
		return "improved"
	}
	return "unknown"
}

// ParseOpsMode accepts "a"/"afspc" and "i"/"improved". Empty means improved.
func ParseOpsMode(s string) (OpsMode, error) {
	switch s {
	case "", "i", "improved":
		return OpsImproved, nil
	case "a", "afspc":
		return OpsAFSPC, nil
	}
	return 0, errors.Errorf("unknown ops mode %q", s)
}

// Method tells which branch of the theory a record uses. It is fixed at
// initialization.
type Method byte

const (
	NearEarth Method = 'n'
	DeepSpace Method = 'd'
)

func (m Method) String() string {
	if m == DeepSpace {
		return "deep-space"
	}
	return "near-earth"
}

// methodFor classifies a Brouwer mean motion (rad/min).
func methodFor(no float64) Method {
	if twoPi/no >= deepSpacePeriod {
		return DeepSpace
	}
	return NearEarth
}

// Elements is a normalized mean element set, as read from a TLE or an OMM.
type Elements struct {
	SatNum  string
	EpochJD float64 // Julian date of the epoch (UTC)
	Epoch   float64 // days since 1950 Jan 0.0
	Ecco    float64 // eccentricity
	Inclo   float64 // inclination (rad)
	Nodeo   float64 // right ascension of the ascending node (rad)
	Argpo   float64 // argument of perigee (rad)
	Mo      float64 // mean anomaly (rad)
	No      float64 // Kozai mean motion (rad/min)
	Bstar   float64 // drag term (1/earth radii)
	NDot    float64 // first derivative of mean motion (rad/min²)
	NDDot   float64 // second derivative of mean motion (rad/min³)
}

// ErrInvalidElements is wrapped by Validate errors.
var ErrInvalidElements = errors.New("invalid elements")

// Validate checks the ranges the theory can accept.
func (el Elements) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"eccentricity", el.Ecco},
		{"mean motion", el.No},
		{"inclination", el.Inclo},
		{"node", el.Nodeo},
		{"argument of perigee", el.Argpo},
		{"mean anomaly", el.Mo},
		{"bstar", el.Bstar},
		{"epoch", el.Epoch},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.Wrapf(ErrInvalidElements, "%s %v is not finite", f.name, f.v)
		}
	}

	switch {
	case el.Ecco < 0 || el.Ecco >= 1:
		return errors.Wrapf(ErrInvalidElements, "eccentricity %v out of [0,1)", el.Ecco)
	case el.No <= 0:
		return errors.Wrapf(ErrInvalidElements, "mean motion %v must be positive", el.No)
	case el.Inclo < 0 || el.Inclo > math.Pi:
		return errors.Wrapf(ErrInvalidElements, "inclination %v out of [0,pi]", el.Inclo)
	}
	return nil
}

// SemiMajorAxis returns the Kozai semi-major axis in km for the given model.
func (el Elements) SemiMajorAxis(grav GravityModel) float64 {
	return math.Pow(el.No*grav.TUMin, -x2o3) * grav.Radius
}

// ApogeeAltitude and PerigeeAltitude return altitudes in km above the
// model's equatorial radius.
func (el Elements) ApogeeAltitude(grav GravityModel) float64 {
	return el.SemiMajorAxis(grav)*(1+el.Ecco) - grav.Radius
}

func (el Elements) PerigeeAltitude(grav GravityModel) float64 {
	return el.SemiMajorAxis(grav)*(1-el.Ecco) - grav.Radius
}
