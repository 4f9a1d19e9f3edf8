package sgp4

import "math"

// rptim is the Earth rotation rate in rad/min (7.29211514668855e-5 rad/s).
const rptim = 4.37526908801129966e-3

// Resonance classes of a deep-space orbit.
const (
	resonanceNone     = 0
	resonanceSynchron = 1
	resonanceHalfDay  = 2
)

// inclinationShallow is 3 deg. Below it, and above 177 deg, the lunar-solar
// node rates are dropped.
const inclinationShallow = 5.2359877e-2

// resonanceClass tells which geopotential resonance, if any, applies to a
// Brouwer mean motion nm (rad/min) and eccentricity em.
func resonanceClass(nm, em float64) int {
	irez := resonanceNone
	if nm < 0.0052359877 && nm > 0.0034906585 {
		irez = resonanceSynchron
	}
	if nm >= 8.26e-3 && nm <= 9.24e-3 && em >= 0.5 {
		irez = resonanceHalfDay
	}
	return irez
}

// dsinit computes the lunar-solar secular rates and, for resonant orbits,
// the geopotential resonance coefficients and the integrator seed. el holds
// the working elements, advanced by the secular rates over t minutes. The
// returned float is the working mean motion.
func (r *Record) dsinit(d *dscomResult, xpidot, eccsq, t, tc float64, el angles) (angles, float64) {
	const (
		q22 = 1.7891679e-6
		q31 = 2.1460748e-6
		q33 = 2.2123015e-7
	)

	ds := &r.deep
	ss, s := &d.solar, &d.lunar
	cosim, sinim := d.cosim, d.sinim
	emsq := d.emsq
	nm := d.nm
	em := el.ecc

	ds.irez = resonanceClass(nm, em)

	// solar terms
	ses := ss.s1 * zns * ss.s5
	sis := ss.s2 * zns * (ss.z11 + ss.z13)
	sls := -zns * ss.s3 * (ss.z1 + ss.z3 - 14.0 - 6.0*emsq)
	sghs := ss.s4 * zns * (ss.z31 + ss.z33 - 6.0)
	shs := -zns * ss.s2 * (ss.z21 + ss.z23)
	if el.incl < inclinationShallow || el.incl > math.Pi-inclinationShallow {
		shs = 0.0
	}
	if sinim != 0.0 {
		shs /= sinim
	}
	sgs := sghs - cosim*shs

	// lunar terms
	ds.dedt = ses + s.s1*znl*s.s5
	ds.didt = sis + s.s2*znl*(s.z11+s.z13)
	ds.dmdt = sls - znl*s.s3*(s.z1+s.z3-14.0-6.0*emsq)
	sghl := s.s4 * znl * (s.z31 + s.z33 - 6.0)
	shll := -znl * s.s2 * (s.z21 + s.z23)
	if el.incl < inclinationShallow || el.incl > math.Pi-inclinationShallow {
		shll = 0.0
	}
	ds.domdt = sgs + sghl
	ds.dnodt = shs
	if sinim != 0.0 {
		ds.domdt -= cosim / sinim * shll
		ds.dnodt += shll / sinim
	}

	theta := math.Mod(r.gsto+tc*rptim, twoPi)
	el.ecc += ds.dedt * t
	el.incl += ds.didt * t
	el.argp += ds.domdt * t
	el.node += ds.dnodt * t
	el.mean += ds.dmdt * t

	if ds.irez == resonanceNone {
		return el, nm
	}

	aonv := pow23(nm / r.Gravity.XKE)

	switch ds.irez {
	case resonanceHalfDay:
		// the polynomials are fitted on the epoch eccentricity
		r.halfDayCoefficients(nm, aonv, cosim, sinim, eccsq)
		ds.xlamo = math.Mod(r.mo+r.nodeo+r.nodeo-(theta+theta), twoPi)
		ds.xfact = r.mdot + ds.dmdt + 2.0*(r.nodedot+ds.dnodt-rptim) - r.no
	case resonanceSynchron:
		g200 := 1.0 + emsq*(-2.5+0.8125*emsq)
		g310 := 1.0 + 2.0*emsq
		g300 := 1.0 + emsq*(-6.0+6.60937*emsq)
		f220 := 0.75 * (1.0 + cosim) * (1.0 + cosim)
		f311 := 0.9375*sinim*sinim*(1.0+3.0*cosim) - 0.75*(1.0+cosim)
		f330 := 1.0 + cosim
		f330 *= 1.875 * f330 * f330
		ds.del1 = 3.0 * nm * nm * aonv * aonv
		ds.del2 = 2.0 * ds.del1 * f220 * g200 * q22
		ds.del3 = 3.0 * ds.del1 * f330 * g300 * q33 * aonv
		ds.del1 = ds.del1 * f311 * g310 * q31 * aonv
		ds.xlamo = math.Mod(r.mo+r.nodeo+r.argpo-theta, twoPi)
		ds.xfact = r.mdot + xpidot + ds.dmdt + ds.domdt + ds.dnodt - (r.no + rptim)
	}

	ds.xli = ds.xlamo
	ds.xni = r.no
	ds.atime = 0.0
	return el, r.no
}

// halfDayCoefficients fills the d-coefficients of the 12 hour resonance.
func (r *Record) halfDayCoefficients(nm, aonv, cosim, sinim, eccsq float64) {
	const (
		root22 = 1.7891679e-6
		root32 = 3.7393792e-7
		root44 = 7.3636953e-9
		root52 = 1.1428639e-7
		root54 = 2.1765803e-9
	)
	ds := &r.deep
	em := r.ecco
	emsq := eccsq
	cosisq := cosim * cosim
	eoc := em * emsq

	var g211, g310, g322, g410, g422, g520, g521, g532, g533 float64
	g201 := -0.306 - (em-0.64)*0.440
	if em <= 0.65 {
		g211 = 3.616 - 13.2470*em + 16.2900*emsq
		g310 = -19.302 + 117.3900*em - 228.4190*emsq + 156.5910*eoc
		g322 = -18.9068 + 109.7927*em - 214.6334*emsq + 146.5816*eoc
		g410 = -41.122 + 242.6940*em - 471.0940*emsq + 313.9530*eoc
		g422 = -146.407 + 841.8800*em - 1629.014*emsq + 1083.4350*eoc
		g520 = -532.114 + 3017.977*em - 5740.032*emsq + 3708.2760*eoc
	} else {
		g211 = -72.099 + 331.819*em - 508.738*emsq + 266.724*eoc
		g310 = -346.844 + 1582.851*em - 2415.925*emsq + 1246.113*eoc
		g322 = -342.585 + 1554.908*em - 2366.899*emsq + 1215.972*eoc
		g410 = -1052.797 + 4758.686*em - 7193.992*emsq + 3651.957*eoc
		g422 = -3581.690 + 16178.110*em - 24462.770*emsq + 12422.520*eoc
		if em > 0.715 {
			g520 = -5149.66 + 29936.92*em - 54087.36*emsq + 31324.56*eoc
		} else {
			g520 = 1464.74 - 4664.75*em + 3763.64*emsq
		}
	}
	if em < 0.7 {
		g533 = -919.22770 + 4988.6100*em - 9064.7700*emsq + 5542.21*eoc
		g521 = -822.71072 + 4568.6173*em - 8491.4146*emsq + 5337.524*eoc
		g532 = -853.66600 + 4690.2500*em - 8624.7700*emsq + 5341.4*eoc
	} else {
		g533 = -37995.780 + 161616.52*em - 229838.20*emsq + 109377.94*eoc
		g521 = -51752.104 + 218913.95*em - 309468.16*emsq + 146349.42*eoc
		g532 = -40023.880 + 170470.89*em - 242699.48*emsq + 115605.82*eoc
	}

	sini2 := sinim * sinim
	f220 := 0.75 * (1.0 + 2.0*cosim + cosisq)
	f221 := 1.5 * sini2
	f321 := 1.875 * sinim * (1.0 - 2.0*cosim - 3.0*cosisq)
	f322 := -1.875 * sinim * (1.0 + 2.0*cosim - 3.0*cosisq)
	f441 := 35.0 * sini2 * f220
	f442 := 39.3750 * sini2 * sini2
	f522 := 9.84375 * sinim * (sini2*(1.0-2.0*cosim-5.0*cosisq) +
		0.33333333*(-2.0+4.0*cosim+6.0*cosisq))
	f523 := sinim * (4.92187512*sini2*(-2.0-4.0*cosim+10.0*cosisq) +
		6.56250012*(1.0+2.0*cosim-3.0*cosisq))
	f542 := 29.53125 * sinim * (2.0 - 8.0*cosim +
		cosisq*(-12.0+8.0*cosim+10.0*cosisq))
	f543 := 29.53125 * sinim * (-2.0 - 8.0*cosim +
		cosisq*(12.0+8.0*cosim-10.0*cosisq))

	temp1 := 3.0 * nm * nm * aonv * aonv
	temp := temp1 * root22
	ds.d2201 = temp * f220 * g201
	ds.d2211 = temp * f221 * g211
	temp1 *= aonv
	temp = temp1 * root32
	ds.d3210 = temp * f321 * g310
	ds.d3222 = temp * f322 * g322
	temp1 *= aonv
	temp = 2.0 * temp1 * root44
	ds.d4410 = temp * f441 * g410
	ds.d4422 = temp * f442 * g422
	temp1 *= aonv
	temp = temp1 * root52
	ds.d5220 = temp * f522 * g520
	ds.d5232 = temp * f523 * g532
	temp = 2.0 * temp1 * root54
	ds.d5421 = temp * f542 * g521
	ds.d5433 = temp * f543 * g533
}
