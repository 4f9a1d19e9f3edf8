package sgp4

import "math"

// initlResult holds the auxiliary epoch quantities shared by sgp4init.
type initlResult struct {
	no     float64 // Brouwer mean motion (rad/min)
	ainv   float64
	ao     float64 // semi-major axis (earth radii)
	con41  float64
	con42  float64 // 1 - 5cos²i
	cosio  float64
	cosio2 float64
	eccsq  float64
	omeosq float64 // 1 - e²
	posq   float64 // semi-parameter squared
	rp     float64 // radius of perigee (earth radii)
	rteosq float64
	sinio  float64
	gsto   float64 // sidereal time at epoch (rad)
}

// initl un-Kozais the mean motion and computes the epoch geometry.
func initl(grav GravityModel, mode OpsMode, ecco, epoch, inclo, no float64) initlResult {
	var r initlResult

	r.eccsq = ecco * ecco
	r.omeosq = 1.0 - r.eccsq
	r.rteosq = math.Sqrt(r.omeosq)
	r.cosio = math.Cos(inclo)
	r.cosio2 = r.cosio * r.cosio

	ak := pow23(grav.XKE / no)
	d1 := 0.75 * grav.J2 * (3.0*r.cosio2 - 1.0) / (r.rteosq * r.omeosq)
	del := d1 / (ak * ak)
	adel := ak * (1.0 - del*del - del*(1.0/3.0+134.0*del*del/81.0))
	del = d1 / (adel * adel)
	r.no = no / (1.0 + del)

	r.ao = pow23(grav.XKE / r.no)
	r.sinio = math.Sin(inclo)
	po := r.ao * r.omeosq
	r.con42 = 1.0 - 5.0*r.cosio2
	r.con41 = -r.con42 - r.cosio2 - r.cosio2
	r.ainv = 1.0 / r.ao
	r.posq = po * po
	r.rp = r.ao * (1.0 - ecco)

	if mode == OpsAFSPC {
		r.gsto = gstime1970(epoch)
	} else {
		r.gsto = GSTime(epoch + jd1950)
	}
	return r
}

func pow23(x float64) float64 { return math.Pow(x, x2o3) }
