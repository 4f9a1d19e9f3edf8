package sgp4

import "math"

// angles is a working set of mean elements threaded through the deep-space
// routines.
type angles struct {
	ecc, incl, node, argp, mean float64
}

// lunisolarTerm evaluates one truncated Fourier series in the perturber's
// mean anomaly zm.
func lunisolarTerm(zm, ecc float64) (f2, f3, sinzf float64) {
	zf := zm + 2.0*ecc*math.Sin(zm)
	sinzf = math.Sin(zf)
	f2 = 0.5*sinzf*sinzf - 0.25
	f3 = -0.5 * sinzf * math.Cos(zf)
	return f2, f3, sinzf
}

// dpper applies the lunar-solar long-period periodics to el. At init the
// terms are evaluated at epoch only and el is returned unchanged.
func (ds *deepSpace) dpper(t float64, init bool, mode OpsMode, el angles) angles {
	zm := ds.zmos + zns*t
	if init {
		zm = ds.zmos
	}
	f2, f3, sinzf := lunisolarTerm(zm, zes)
	ses := ds.se2*f2 + ds.se3*f3
	sis := ds.si2*f2 + ds.si3*f3
	sls := ds.sl2*f2 + ds.sl3*f3 + ds.sl4*sinzf
	sghs := ds.sgh2*f2 + ds.sgh3*f3 + ds.sgh4*sinzf
	shs := ds.sh2*f2 + ds.sh3*f3

	zm = ds.zmol + znl*t
	if init {
		zm = ds.zmol
	}
	f2, f3, sinzf = lunisolarTerm(zm, zel)
	sel := ds.ee2*f2 + ds.e3*f3
	sil := ds.xi2*f2 + ds.xi3*f3
	sll := ds.xl2*f2 + ds.xl3*f3 + ds.xl4*sinzf
	sghl := ds.xgh2*f2 + ds.xgh3*f3 + ds.xgh4*sinzf
	shll := ds.xh2*f2 + ds.xh3*f3

	if init {
		return el
	}

	pe := ses + sel - ds.peo
	pinc := sis + sil - ds.pinco
	pl := sls + sll - ds.plo
	pgh := sghs + sghl - ds.pgho
	ph := shs + shll - ds.pho

	el.incl += pinc
	el.ecc += pe
	sinip := math.Sin(el.incl)
	cosip := math.Cos(el.incl)

	// 0.2 rad = 11.45916 deg, on the perturbed inclination
	if el.incl >= 0.2 {
		ph /= sinip
		pgh -= cosip * ph
		el.argp += pgh
		el.node += ph
		el.mean += pl
		return el
	}

	// Lyddane modification
	sinop := math.Sin(el.node)
	cosop := math.Cos(el.node)
	alfdp := sinip * sinop
	betdp := sinip * cosop
	dalf := ph*cosop + pinc*cosip*sinop
	dbet := -ph*sinop + pinc*cosip*cosop
	alfdp += dalf
	betdp += dbet

	el.node = math.Mod(el.node, twoPi)
	// AFSPC intrinsics keep the node positive
	if el.node < 0.0 && mode == OpsAFSPC {
		el.node += twoPi
	}
	xls := el.mean + el.argp + cosip*el.node
	dls := pl + pgh - pinc*el.node*sinip
	xls += dls
	xnoh := el.node
	el.node = math.Atan2(alfdp, betdp)
	if el.node < 0.0 && mode == OpsAFSPC {
		el.node += twoPi
	}
	if math.Abs(xnoh-el.node) > math.Pi {
		if el.node < xnoh {
			el.node += twoPi
		} else {
			el.node -= twoPi
		}
	}
	el.mean += pl
	el.argp = xls - el.mean - cosip*el.node
	return el
}
