package sgp4

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// GravityModel holds the Earth constants used by the propagator.
// Values are never mutated after construction, a model can be shared.
type GravityModel struct {
	Name   string
	Mu     float64 // km³/s²
	Radius float64 // km
	XKE    float64 // sqrt(GM) in earth radii³/min²
	TUMin  float64 // minutes per time unit
	J2     float64
	J3     float64
	J4     float64
	J3OJ2  float64
}

// VKmPerSec converts velocities from earth radii per minute to km/s.
func (g GravityModel) VKmPerSec() float64 {
	return g.Radius * g.XKE / 60.0
}

func newGravityModel(name string, mu, radius, xke, j2, j3, j4 float64) GravityModel {
	if xke == 0 {
		xke = 60.0 / math.Sqrt(radius*radius*radius/mu)
	}
	return GravityModel{
		Name:   name,
		Mu:     mu,
		Radius: radius,
		XKE:    xke,
		TUMin:  1.0 / xke,
		J2:     j2,
		J3:     j3,
		J4:     j4,
		J3OJ2:  j3 / j2,
	}
}

var (
	// WGS72Old is the model of the original Spacetrack report #3 code.
	WGS72Old = newGravityModel("wgs72old", 398600.79964, 6378.135, 0.0743669161, 0.001082616, -0.00000253881, -0.00000165597)
	// WGS72 is the model most TLE producers fit against.
	WGS72 = newGravityModel("wgs72", 398600.8, 6378.135, 0, 0.001082616, -0.00000253881, -0.00000165597)
	// WGS84 is the default model.
	WGS84 = newGravityModel("wgs84", 398600.5, 6378.137, 0, 0.00108262998905, -0.00000253215306, -0.00000161098761)
)

// ErrUnknownGravityModel is returned by GravityModelByName.
var ErrUnknownGravityModel = errors.New("unknown gravity model")

// GravityModelByName returns the model registered under name, case insensitive.
// An empty name selects WGS84.
func GravityModelByName(name string) (GravityModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WGS84.Name:
		return WGS84, nil
	case WGS72.Name:
		return WGS72, nil
	case WGS72Old.Name:
		return WGS72Old, nil
	}
	return GravityModel{}, errors.Wrapf(ErrUnknownGravityModel, "%q", name)
}
