package sgp4

import "math"

// DopplerFactor returns 1 + |range rate|/c for the satellite seen from the
// inertial observer position (km). The range rate is taken over one second
// of the satellite's motion, so the factor is never below 1.
func DopplerFactor(observer Vector, sat Eci) float64 {
	current := sat.Position.Sub(observer).Norm()
	next := sat.Position.Add(sat.Velocity).Sub(observer).Norm()

	return 1 + math.Abs(next-current)/speedOfLight
}
