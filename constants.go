package sgp4

import "math"

// Mathematical and physical constants
const (
	twoPi         = 2 * math.Pi
	deg2rad       = math.Pi / 180.0
	rad2deg       = 180.0 / math.Pi
	x2o3          = 2.0 / 3.0
	minutesPerDay = 1440.0
	xpdotp        = minutesPerDay / twoPi // rev/day per rad/min
	we            = 7.2921150e-5          // Earth's angular velocity (rad/sec)
	speedOfLight  = 299792.458            // km/s

	// jd1950 is the Julian date of 1950 Jan 0.0, the origin of the model epoch.
	jd1950 = 2433281.5

	// deepSpacePeriod is the orbital period in minutes at or above which the
	// deep-space (SDP4) branch is used.
	deepSpacePeriod = 225.0

	// WGS-84 Earth ellipsoid, used for the geodetic frames
	ellipsoidA = 6378.137            // Earth's equatorial radius in km
	ellipsoidB = 6356.7523142        // Earth's polar radius in km
	ellipsoidF = 1.0 / 298.257223563 // Earth's flattening factor
)

// StateVector holds a TEME position (km) and velocity (km/s).
type StateVector struct {
	X, Y, Z    float64 // Position components (km)
	VX, VY, VZ float64 // Velocity components (km/s)
}

// Position returns the position part of the state.
func (sv StateVector) Position() Vector {
	return Vector{X: sv.X, Y: sv.Y, Z: sv.Z}
}

// Velocity returns the velocity part of the state.
func (sv StateVector) Velocity() Vector {
	return Vector{X: sv.VX, Y: sv.VY, Z: sv.VZ}
}
