package sgp4

import "math"

// Propagate returns the TEME state tsince minutes after epoch (negative
// values propagate backwards).
//
// On a *SatelliteDecayedError the returned state is still filled in, for
// diagnostics. Any other error comes with a zero state.
func (r *Record) Propagate(tsince float64) (StateVector, error) {
	const temp4 = 1.5e-12

	grav := r.Gravity
	j2, j3oj2, xke := grav.J2, grav.J3OJ2, grav.XKE
	vkmpersec := grav.VKmPerSec()

	r.T = tsince
	r.Error = CodeNone
	t := tsince

	// secular gravity and atmospheric drag
	xmdf := r.mo + r.mdot*t
	argpdf := r.argpo + r.argpdot*t
	nodedf := r.nodeo + r.nodedot*t
	argpm := argpdf
	mm := xmdf
	t2 := t * t
	nodem := nodedf + r.nodecf*t2
	tempa := 1.0 - r.cc1*t
	tempe := r.bstar * r.cc4 * t
	templ := r.t2cof * t2

	if !r.isimp {
		delomg := r.omgcof * t
		delmtemp := 1.0 + r.eta*math.Cos(xmdf)
		delm := r.xmcof * (delmtemp*delmtemp*delmtemp - r.delmo)
		temp := delomg + delm
		mm = xmdf + temp
		argpm = argpdf - temp
		t3 := t2 * t
		t4 := t3 * t
		tempa = tempa - r.d2*t2 - r.d3*t3 - r.d4*t4
		tempe += r.bstar * r.cc5 * (math.Sin(mm) - r.sinmao)
		templ = templ + r.t3cof*t3 + t4*(r.t4cof+t*r.t5cof)
	}

	nm := r.no
	el := angles{ecc: r.ecco, incl: r.inclo, node: nodem, argp: argpm, mean: mm}
	if r.Method == DeepSpace {
		el, nm = r.dspace(t, t, el, nm)
	}

	if nm <= 0.0 {
		return r.fail(&ModelLimitsError{Tsince: t, Reason: ReasonMeanMotionNotPositive, Value: nm, code: CodeMeanMotion})
	}

	am := pow23(xke/nm) * tempa * tempa
	nm = xke / math.Pow(am, 1.5)
	em := el.ecc - tempe

	if em >= 1.0 || em < -0.001 {
		return r.fail(&ModelLimitsError{Tsince: t, Reason: ReasonEccentricityOutOfRange, Value: em, code: CodeEccentricity})
	}
	if em < 1.0e-6 {
		em = 1.0e-6
	}

	mm = el.mean + r.no*templ
	xlm := mm + el.argp + el.node
	nodem = math.Mod(el.node, twoPi)
	argpm = math.Mod(el.argp, twoPi)
	xlm = math.Mod(xlm, twoPi)
	mm = math.Mod(xlm-argpm-nodem, twoPi)

	// lunar-solar periodics
	p := angles{ecc: em, incl: el.incl, node: nodem, argp: argpm, mean: mm}
	sinip := math.Sin(p.incl)
	cosip := math.Cos(p.incl)
	if r.Method == DeepSpace {
		p = r.deep.dpper(t, false, r.OpsMode, p)
		if p.incl < 0.0 {
			p.incl = -p.incl
			p.node += math.Pi
			p.argp -= math.Pi
		}
		if p.ecc < 0.0 || p.ecc > 1.0 {
			return r.fail(&ModelLimitsError{Tsince: t, Reason: ReasonPerturbedEccentricity, Value: p.ecc, code: CodePerturbedEccentricity})
		}

		sinip = math.Sin(p.incl)
		cosip = math.Cos(p.incl)
		r.aycof = -0.5 * j3oj2 * sinip
		if math.Abs(cosip+1.0) > 1.5e-12 {
			r.xlcof = -0.25 * j3oj2 * sinip * (3.0 + 5.0*cosip) / (1.0 + cosip)
		} else {
			r.xlcof = -0.25 * j3oj2 * sinip * (3.0 + 5.0*cosip) / temp4
		}
	}

	// long period periodics
	axnl := p.ecc * math.Cos(p.argp)
	temp := 1.0 / (am * (1.0 - p.ecc*p.ecc))
	aynl := p.ecc*math.Sin(p.argp) + temp*r.aycof
	xl := p.mean + p.argp + p.node + temp*r.xlcof*axnl

	// Kepler's equation
	u := math.Mod(xl-p.node, twoPi)
	eo1 := u
	tem5 := 9999.9
	var sineo1, coseo1 float64
	for ktr := 1; math.Abs(tem5) >= 1.0e-12 && ktr <= 10; ktr++ {
		sineo1 = math.Sin(eo1)
		coseo1 = math.Cos(eo1)
		tem5 = 1.0 - coseo1*axnl - sineo1*aynl
		tem5 = (u - aynl*coseo1 + axnl*sineo1 - eo1) / tem5
		if math.Abs(tem5) >= 0.95 {
			if tem5 > 0.0 {
				tem5 = 0.95
			} else {
				tem5 = -0.95
			}
		}
		eo1 += tem5
	}

	// short period preliminary quantities
	ecose := axnl*coseo1 + aynl*sineo1
	esine := axnl*sineo1 - aynl*coseo1
	el2 := axnl*axnl + aynl*aynl
	pl := am * (1.0 - el2)
	if pl < 0.0 {
		return r.fail(&ModelLimitsError{Tsince: t, Reason: ReasonSemiLatusRectumNegative, Value: pl, code: CodeSemiLatusRectum})
	}

	rl := am * (1.0 - ecose)
	rdotl := math.Sqrt(am) * esine / rl
	rvdotl := math.Sqrt(pl) / rl
	betal := math.Sqrt(1.0 - el2)
	temp = esine / (1.0 + betal)
	sinu := am / rl * (sineo1 - aynl - axnl*temp)
	cosu := am / rl * (coseo1 - axnl + aynl*temp)
	su := math.Atan2(sinu, cosu)
	sin2u := (cosu + cosu) * sinu
	cos2u := 1.0 - 2.0*sinu*sinu
	temp = 1.0 / pl
	temp1 := 0.5 * j2 * temp
	temp2 := temp1 * temp

	// update for short period periodics
	if r.Method == DeepSpace {
		cosisq := cosip * cosip
		r.con41 = 3.0*cosisq - 1.0
		r.x1mth2 = 1.0 - cosisq
		r.x7thm1 = 7.0*cosisq - 1.0
	}
	mrt := rl*(1.0-1.5*temp2*betal*r.con41) + 0.5*temp1*r.x1mth2*cos2u
	su -= 0.25 * temp2 * r.x7thm1 * sin2u
	xnode := p.node + 1.5*temp2*cosip*sin2u
	xinc := p.incl + 1.5*temp2*cosip*sinip*cos2u
	mvt := rdotl - nm*temp1*r.x1mth2*sin2u/xke
	rvdot := rvdotl + nm*temp1*(r.x1mth2*cos2u+1.5*r.con41)/xke

	// orientation vectors
	sinsu := math.Sin(su)
	cossu := math.Cos(su)
	snod := math.Sin(xnode)
	cnod := math.Cos(xnode)
	sini := math.Sin(xinc)
	cosi := math.Cos(xinc)
	xmx := -snod * cosi
	xmy := cnod * cosi
	ux := xmx*sinsu + cnod*cossu
	uy := xmy*sinsu + snod*cossu
	uz := sini * sinsu
	vx := xmx*cossu - cnod*sinsu
	vy := xmy*cossu - snod*sinsu
	vz := sini * cossu

	sv := StateVector{
		X:  mrt * ux * grav.Radius,
		Y:  mrt * uy * grav.Radius,
		Z:  mrt * uz * grav.Radius,
		VX: (mvt*ux + rvdot*vx) * vkmpersec,
		VY: (mvt*uy + rvdot*vy) * vkmpersec,
		VZ: (mvt*uz + rvdot*vz) * vkmpersec,
	}

	if mrt < 1.0 {
		r.Error = CodeDecayed
		return sv, &SatelliteDecayedError{Tsince: t, Radius: mrt}
	}
	return sv, nil
}

func (r *Record) fail(err *ModelLimitsError) (StateVector, error) {
	r.Error = err.code
	return StateVector{}, err
}
