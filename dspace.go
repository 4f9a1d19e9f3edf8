package sgp4

import "math"

const (
	resonanceStep  = 720.0      // integrator step (min)
	resonanceStep2 = 259200.0   // half the step squared
	fasx2          = 0.13130908 // synchronous phase angles
	fasx4          = 2.8843198
	fasx6          = 0.37448087
	g22            = 5.7686396 // half-day phase angles
	g32            = 0.95240898
	g44            = 1.8014998
	g52            = 1.0508330
	g54            = 4.4108898
)

// dspace applies the lunar-solar secular rates to el and, for resonant
// orbits, integrates the mean longitude and mean motion from epoch to t.
// The integration always restarts from the seed stored by dsinit, so the
// record is only read. It returns the updated elements and mean motion.
func (r *Record) dspace(t, tc float64, el angles, nm float64) (angles, float64) {
	ds := &r.deep

	theta := math.Mod(r.gsto+tc*rptim, twoPi)
	el.ecc += ds.dedt * t
	el.incl += ds.didt * t
	el.argp += ds.domdt * t
	el.node += ds.dnodt * t
	el.mean += ds.dmdt * t

	if ds.irez == resonanceNone {
		return el, nm
	}

	atime, xli, xni := ds.atime, ds.xli, ds.xni
	if atime == 0.0 || t*atime <= 0.0 || math.Abs(t) < math.Abs(atime) {
		atime = 0.0
		xni = r.no
		xli = ds.xlamo
	}

	delt := -resonanceStep
	if t > 0.0 {
		delt = resonanceStep
	}

	var xndt, xnddt, xldot, ft float64
	for {
		if ds.irez != resonanceHalfDay {
			xndt, xnddt = ds.synchronousRates(xli)
		} else {
			xndt, xnddt = ds.halfDayRates(xli, r.argpo+r.argpdot*atime)
		}
		xldot = xni + ds.xfact
		xnddt *= xldot

		if math.Abs(t-atime) < resonanceStep {
			ft = t - atime
			break
		}
		xli += xldot*delt + xndt*resonanceStep2
		xni += xndt*delt + xnddt*resonanceStep2
		atime += delt
	}

	nm = xni + xndt*ft + xnddt*ft*ft*0.5
	xl := xli + xldot*ft + xndt*ft*ft*0.5
	if ds.irez != resonanceSynchron {
		el.mean = xl - 2.0*el.node + 2.0*theta
	} else {
		el.mean = xl - el.node - el.argp + theta
	}
	dndt := nm - r.no
	return el, r.no + dndt
}

// synchronousRates returns the mean motion rate and its derivative factor
// (to be multiplied by the longitude rate) for the 24 hour resonance.
func (ds *deepSpace) synchronousRates(xli float64) (xndt, xnddt float64) {
	xndt = ds.del1*math.Sin(xli-fasx2) +
		ds.del2*math.Sin(2.0*(xli-fasx4)) +
		ds.del3*math.Sin(3.0*(xli-fasx6))
	xnddt = ds.del1*math.Cos(xli-fasx2) +
		2.0*ds.del2*math.Cos(2.0*(xli-fasx4)) +
		3.0*ds.del3*math.Cos(3.0*(xli-fasx6))
	return xndt, xnddt
}

// halfDayRates is synchronousRates for the 12 hour resonance, xomi being
// the argument of perigee at the current integrator time.
func (ds *deepSpace) halfDayRates(xli, xomi float64) (xndt, xnddt float64) {
	x2omi := xomi + xomi
	x2li := xli + xli
	xndt = ds.d2201*math.Sin(x2omi+xli-g22) +
		ds.d2211*math.Sin(xli-g22) +
		ds.d3210*math.Sin(xomi+xli-g32) +
		ds.d3222*math.Sin(-xomi+xli-g32) +
		ds.d4410*math.Sin(x2omi+x2li-g44) +
		ds.d4422*math.Sin(x2li-g44) +
		ds.d5220*math.Sin(xomi+xli-g52) +
		ds.d5232*math.Sin(-xomi+xli-g52) +
		ds.d5421*math.Sin(xomi+x2li-g54) +
		ds.d5433*math.Sin(-xomi+x2li-g54)
	// terms in 2*xli differentiate with a factor 2
	xnddt = ds.d2201*math.Cos(x2omi+xli-g22) +
		ds.d2211*math.Cos(xli-g22) +
		ds.d3210*math.Cos(xomi+xli-g32) +
		ds.d3222*math.Cos(-xomi+xli-g32) +
		ds.d5220*math.Cos(xomi+xli-g52) +
		ds.d5232*math.Cos(-xomi+xli-g52) +
		2.0*(ds.d4410*math.Cos(x2omi+x2li-g44)+
			ds.d4422*math.Cos(x2li-g44)+
			ds.d5421*math.Cos(xomi+x2li-g54)+
			ds.d5433*math.Cos(-xomi+x2li-g54))
	return xndt, xnddt
}
