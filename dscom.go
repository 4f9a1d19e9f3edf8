package sgp4

import "math"

// perturber describes the orientation and strength of a third body (the Sun
// or the Moon) as seen from the satellite orbit.
type perturber struct {
	zcosg, zsing float64
	zcosi, zsini float64
	zcosh, zsinh float64
	cc           float64
}

// amplitudes are the intermediate third-body terms of one dscom pass.
type amplitudes struct {
	s1, s2, s3, s4, s5, s6, s7 float64
	z1, z2, z3                 float64
	z11, z12, z13              float64
	z21, z22, z23              float64
	z31, z32, z33              float64
}

// dscomResult carries the deep-space common quantities. solar holds the
// ss*/sz* terms and lunar the s*/z* ones.
type dscomResult struct {
	snodm, cnodm, sinim, cosim, sinomm, cosomm float64
	day, em, emsq, gam, rtemsq, nm             float64

	solar, lunar amplitudes

	e3, ee2                         float64
	se2, se3, sgh2, sgh3, sgh4      float64
	sh2, sh3, si2, si3, sl2, sl3    float64
	sl4                             float64
	xgh2, xgh3, xgh4, xh2, xh3, xi2 float64
	xi3, xl2, xl3, xl4              float64
	zmol, zmos                      float64
}

const (
	zes = 0.01675
	zel = 0.05490
	zns = 1.19459e-5
	znl = 1.5835218e-4
)

// dscom computes the lunar-solar coefficients shared by dpper and dsinit.
// tc is the time offset in minutes, zero at initialization.
func dscom(epoch, ep, argpp, tc, inclp, nodep, np float64) dscomResult {
	const (
		c1ss   = 2.9864797e-6
		c1l    = 4.7968065e-7
		zsinis = 0.39785416
		zcosis = 0.91744867
		zcosgs = 0.1945905
		zsings = -0.98088458
	)

	var d dscomResult
	d.nm = np
	d.em = ep
	d.snodm = math.Sin(nodep)
	d.cnodm = math.Cos(nodep)
	d.sinomm = math.Sin(argpp)
	d.cosomm = math.Cos(argpp)
	d.sinim = math.Sin(inclp)
	d.cosim = math.Cos(inclp)
	d.emsq = d.em * d.em
	betasq := 1.0 - d.emsq
	d.rtemsq = math.Sqrt(betasq)

	d.day = epoch + 18261.5 + tc/1440.0
	xnodce := math.Mod(4.5236020-9.2422029e-4*d.day, twoPi)
	stem := math.Sin(xnodce)
	ctem := math.Cos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1.0 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1.0 - zsinhl*zsinhl)
	d.gam = 5.8351514 + 0.0019443680*d.day
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = math.Atan2(zx, zy)
	zx += d.gam - xnodce
	zcosgl := math.Cos(zx)
	zsingl := math.Sin(zx)

	// solar pass first: the lunar node below is rotated from the same
	// satellite node
	sun := perturber{
		zcosg: zcosgs,
		zsing: zsings,
		zcosi: zcosis,
		zsini: zsinis,
		zcosh: d.cnodm,
		zsinh: d.snodm,
		cc:    c1ss,
	}
	moon := perturber{
		zcosg: zcosgl,
		zsing: zsingl,
		zcosi: zcosil,
		zsini: zsinil,
		zcosh: zcoshl*d.cnodm + zsinhl*d.snodm,
		zsinh: d.snodm*zcoshl - d.cnodm*zsinhl,
		cc:    c1l,
	}
	d.solar = d.thirdBody(sun, betasq)
	d.lunar = d.thirdBody(moon, betasq)

	d.zmol = math.Mod(4.7199672+(0.22997150*d.day-d.gam), twoPi)
	d.zmos = math.Mod(6.2565837+0.017201977*d.day, twoPi)

	ss := &d.solar
	d.se2 = 2.0 * ss.s1 * ss.s6
	d.se3 = 2.0 * ss.s1 * ss.s7
	d.si2 = 2.0 * ss.s2 * ss.z12
	d.si3 = 2.0 * ss.s2 * (ss.z13 - ss.z11)
	d.sl2 = -2.0 * ss.s3 * ss.z2
	d.sl3 = -2.0 * ss.s3 * (ss.z3 - ss.z1)
	d.sl4 = -2.0 * ss.s3 * (-21.0 - 9.0*d.emsq) * zes
	d.sgh2 = 2.0 * ss.s4 * ss.z32
	d.sgh3 = 2.0 * ss.s4 * (ss.z33 - ss.z31)
	d.sgh4 = -18.0 * ss.s4 * zes
	d.sh2 = -2.0 * ss.s2 * ss.z22
	d.sh3 = -2.0 * ss.s2 * (ss.z23 - ss.z21)

	s := &d.lunar
	d.ee2 = 2.0 * s.s1 * s.s6
	d.e3 = 2.0 * s.s1 * s.s7
	d.xi2 = 2.0 * s.s2 * s.z12
	d.xi3 = 2.0 * s.s2 * (s.z13 - s.z11)
	d.xl2 = -2.0 * s.s3 * s.z2
	d.xl3 = -2.0 * s.s3 * (s.z3 - s.z1)
	d.xl4 = -2.0 * s.s3 * (-21.0 - 9.0*d.emsq) * zel
	d.xgh2 = 2.0 * s.s4 * s.z32
	d.xgh3 = 2.0 * s.s4 * (s.z33 - s.z31)
	d.xgh4 = -18.0 * s.s4 * zel
	d.xh2 = -2.0 * s.s2 * s.z22
	d.xh3 = -2.0 * s.s2 * (s.z23 - s.z21)

	return d
}

// thirdBody evaluates the direction-cosine block for one perturber.
func (d *dscomResult) thirdBody(p perturber, betasq float64) amplitudes {
	var a amplitudes

	a1 := p.zcosg*p.zcosh + p.zsing*p.zcosi*p.zsinh
	a3 := -p.zsing*p.zcosh + p.zcosg*p.zcosi*p.zsinh
	a7 := -p.zcosg*p.zsinh + p.zsing*p.zcosi*p.zcosh
	a8 := p.zsing * p.zsini
	a9 := p.zsing*p.zsinh + p.zcosg*p.zcosi*p.zcosh
	a10 := p.zcosg * p.zsini
	a2 := d.cosim*a7 + d.sinim*a8
	a4 := d.cosim*a9 + d.sinim*a10
	a5 := -d.sinim*a7 + d.cosim*a8
	a6 := -d.sinim*a9 + d.cosim*a10

	x1 := a1*d.cosomm + a2*d.sinomm
	x2 := a3*d.cosomm + a4*d.sinomm
	x3 := -a1*d.sinomm + a2*d.cosomm
	x4 := -a3*d.sinomm + a4*d.cosomm
	x5 := a5 * d.sinomm
	x6 := a6 * d.sinomm
	x7 := a5 * d.cosomm
	x8 := a6 * d.cosomm

	emsq := d.emsq
	a.z31 = 12.0*x1*x1 - 3.0*x3*x3
	a.z32 = 24.0*x1*x2 - 6.0*x3*x4
	a.z33 = 12.0*x2*x2 - 3.0*x4*x4
	a.z1 = 3.0*(a1*a1+a2*a2) + a.z31*emsq
	a.z2 = 6.0*(a1*a3+a2*a4) + a.z32*emsq
	a.z3 = 3.0*(a3*a3+a4*a4) + a.z33*emsq
	a.z11 = -6.0*a1*a5 + emsq*(-24.0*x1*x7-6.0*x3*x5)
	a.z12 = -6.0*(a1*a6+a3*a5) + emsq*(-24.0*(x2*x7+x1*x8)+-6.0*(x3*x6+x4*x5))
	a.z13 = -6.0*a3*a6 + emsq*(-24.0*x2*x8-6.0*x4*x6)
	a.z21 = 6.0*a2*a5 + emsq*(24.0*x1*x5-6.0*x3*x7)
	a.z22 = 6.0*(a4*a5+a2*a6) + emsq*(24.0*(x2*x5+x1*x6)-6.0*(x4*x7+x3*x8))
	a.z23 = 6.0*a4*a6 + emsq*(24.0*x2*x6-6.0*x4*x8)
	a.z1 = a.z1 + a.z1 + betasq*a.z31
	a.z2 = a.z2 + a.z2 + betasq*a.z32
	a.z3 = a.z3 + a.z3 + betasq*a.z33

	a.s3 = p.cc * (1.0 / d.nm)
	a.s2 = -0.5 * a.s3 / d.rtemsq
	a.s4 = a.s3 * d.rtemsq
	a.s1 = -15.0 * d.em * a.s4
	a.s5 = x1*x3 + x2*x4
	a.s6 = x2*x3 + x1*x4
	a.s7 = x2*x4 - x1*x3
	return a
}
