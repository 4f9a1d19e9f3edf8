package sgp4

import "math"

// GSTime returns the Greenwich mean sidereal time in radians (IAU-82) for
// a UT1 Julian date.
func GSTime(jdut1 float64) float64 {
	tut1 := (jdut1 - 2451545.0) / 36525.0

	temp := -6.2e-6*tut1*tut1*tut1 +
		0.093104*tut1*tut1 +
		(876600.0*3600.0+8640184.812866)*tut1 +
		67310.54841 // seconds

	// 360/86400 = 1/240
	temp = math.Mod(temp*deg2rad/240.0, twoPi)
	if temp < 0.0 {
		temp += twoPi
	}
	return temp
}

// gstime1970 is the AFSPC way of computing sidereal time at epoch, counted
// from 1970 Jan 0. epoch is in days since 1950 Jan 0.
func gstime1970(epoch float64) float64 {
	const (
		c1     = 1.72027916940703639e-2
		thgr70 = 1.7321343856509374
		fk5r   = 5.07551419432269442e-15
	)
	ts70 := epoch - 7305.0
	ds70 := math.Floor(ts70 + 1.0e-8)
	tfrac := ts70 - ds70
	c1p2p := c1 + twoPi

	gsto := math.Mod(thgr70+c1*ds70+c1p2p*tfrac+ts70*ts70*fk5r, twoPi)
	if gsto < 0.0 {
		gsto += twoPi
	}
	return gsto
}
