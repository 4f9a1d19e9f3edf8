package sgp4

import (
	"math"

	"github.com/pkg/errors"
)

// NewRecord initializes the propagator state for a mean element set. The
// record is validated by a propagation at epoch and a failure there is
// returned as an *InitializationError.
func NewRecord(grav GravityModel, mode OpsMode, el Elements) (*Record, error) {
	if err := el.Validate(); err != nil {
		return nil, errors.Wrapf(err, "satellite %s", el.SatNum)
	}
	if mode != OpsAFSPC {
		mode = OpsImproved
	}

	r := &Record{
		SatNum:   el.SatNum,
		EpochJD:  el.EpochJD,
		Epoch:    el.Epoch,
		OpsMode:  mode,
		Method:   NearEarth,
		Gravity:  grav,
		Elements: el,
		bstar:    el.Bstar,
		ecco:     el.Ecco,
		argpo:    el.Argpo,
		inclo:    el.Inclo,
		mo:       el.Mo,
		no:       el.No,
		nodeo:    el.Nodeo,
	}
	r.init()

	if _, err := r.Propagate(0.0); err != nil {
		return nil, &InitializationError{SatNum: el.SatNum, Err: err}
	}
	return r, nil
}

// init computes the drag, secular and deep-space coefficients.
func (r *Record) init() {
	const temp4 = 1.5e-12

	radius := r.Gravity.Radius
	j2, j4, j3oj2 := r.Gravity.J2, r.Gravity.J4, r.Gravity.J3OJ2

	// density parameters of the atmosphere model, in earth radii
	ss := 78.0/radius + 1.0
	qzms2ttemp := (120.0 - 78.0) / radius
	qzms2t := qzms2ttemp * qzms2ttemp * qzms2ttemp * qzms2ttemp

	il := initl(r.Gravity, r.OpsMode, r.ecco, r.Epoch, r.inclo, r.no)
	ao := il.ao
	cosio, cosio2, sinio := il.cosio, il.cosio2, il.sinio
	omeosq := il.omeosq
	r.no = il.no
	r.con41 = il.con41
	r.gsto = il.gsto
	r.Error = CodeNone

	r.isimp = il.rp < 220.0/radius+1.0

	sfour := ss
	qzms24 := qzms2t
	perige := (il.rp - 1.0) * radius
	if perige < 156.0 {
		sfour = perige - 78.0
		if perige < 98.0 {
			sfour = 20.0
		}
		qzms24temp := (120.0 - sfour) / radius
		qzms24 = qzms24temp * qzms24temp * qzms24temp * qzms24temp
		sfour = sfour/radius + 1.0
	}

	pinvsq := 1.0 / il.posq
	tsi := 1.0 / (ao - sfour)
	r.eta = ao * r.ecco * tsi
	etasq := r.eta * r.eta
	eeta := r.ecco * r.eta
	psisq := math.Abs(1.0 - etasq)
	coef := qzms24 * tsi * tsi * tsi * tsi
	coef1 := coef / math.Pow(psisq, 3.5)
	cc2 := coef1 * r.no * (ao*(1.0+1.5*etasq+eeta*(4.0+etasq)) +
		0.375*j2*tsi/psisq*r.con41*(8.0+3.0*etasq*(8.0+etasq)))
	r.cc1 = r.bstar * cc2
	cc3 := 0.0
	if r.ecco > 1.0e-4 {
		cc3 = -2.0 * coef * tsi * j3oj2 * r.no * sinio / r.ecco
	}
	r.x1mth2 = 1.0 - cosio2
	r.cc4 = 2.0 * r.no * coef1 * ao * omeosq *
		(r.eta*(2.0+0.5*etasq) + r.ecco*(0.5+2.0*etasq) -
			j2*tsi/(ao*psisq)*
				(-3.0*r.con41*(1.0-2.0*eeta+etasq*(1.5-0.5*eeta))+
					0.75*r.x1mth2*(2.0*etasq-eeta*(1.0+etasq))*math.Cos(2.0*r.argpo)))
	r.cc5 = 2.0 * coef1 * ao * omeosq * (1.0 + 2.75*(etasq+eeta) + eeta*etasq)

	cosio4 := cosio2 * cosio2
	temp1 := 1.5 * j2 * pinvsq * r.no
	temp2 := 0.5 * temp1 * j2 * pinvsq
	temp3 := -0.46875 * j4 * pinvsq * pinvsq * r.no
	r.mdot = r.no + 0.5*temp1*il.rteosq*r.con41 +
		0.0625*temp2*il.rteosq*(13.0-78.0*cosio2+137.0*cosio4)
	r.argpdot = -0.5*temp1*il.con42 +
		0.0625*temp2*(7.0-114.0*cosio2+395.0*cosio4) +
		temp3*(3.0-36.0*cosio2+49.0*cosio4)
	xhdot1 := -temp1 * cosio
	r.nodedot = xhdot1 + (0.5*temp2*(4.0-19.0*cosio2)+2.0*temp3*(3.0-7.0*cosio2))*cosio
	xpidot := r.argpdot + r.nodedot
	r.omgcof = r.bstar * cc3 * math.Cos(r.argpo)
	r.xmcof = 0.0
	if r.ecco > 1.0e-4 {
		r.xmcof = -x2o3 * coef * r.bstar / eeta
	}
	r.nodecf = 3.5 * omeosq * xhdot1 * r.cc1
	r.t2cof = 1.5 * r.cc1

	// guard against divide by zero for inclination = 180 deg
	if math.Abs(cosio+1.0) > 1.5e-12 {
		r.xlcof = -0.25 * j3oj2 * sinio * (3.0 + 5.0*cosio) / (1.0 + cosio)
	} else {
		r.xlcof = -0.25 * j3oj2 * sinio * (3.0 + 5.0*cosio) / temp4
	}
	r.aycof = -0.5 * j3oj2 * sinio
	delmotemp := 1.0 + r.eta*math.Cos(r.mo)
	r.delmo = delmotemp * delmotemp * delmotemp
	r.sinmao = math.Sin(r.mo)
	r.x7thm1 = 7.0*cosio2 - 1.0

	r.Method = methodFor(r.no)
	if r.Method == DeepSpace {
		r.isimp = true
		r.initDeepSpace(xpidot, il.eccsq)
	}

	if !r.isimp {
		cc1sq := r.cc1 * r.cc1
		r.d2 = 4.0 * ao * tsi * cc1sq
		temp := r.d2 * tsi * r.cc1 / 3.0
		r.d3 = (17.0*ao + sfour) * temp
		r.d4 = 0.5 * temp * ao * tsi * (221.0*ao + 31.0*sfour) * r.cc1
		r.t3cof = r.d2 + 2.0*cc1sq
		r.t4cof = 0.25 * (3.0*r.d3 + r.cc1*(12.0*r.d2+10.0*cc1sq))
		r.t5cof = 0.2 * (3.0*r.d4 + 12.0*r.cc1*r.d3 + 6.0*r.d2*r.d2 +
			15.0*cc1sq*(2.0*r.d2+cc1sq))
	}
}

// initDeepSpace stores the lunar-solar coefficients and seeds the resonance
// integrator.
func (r *Record) initDeepSpace(xpidot, eccsq float64) {
	const tc = 0.0

	d := dscom(r.Epoch, r.ecco, r.argpo, tc, r.inclo, r.nodeo, r.no)
	r.deep = deepSpace{
		e3:   d.e3,
		ee2:  d.ee2,
		se2:  d.se2,
		se3:  d.se3,
		sgh2: d.sgh2,
		sgh3: d.sgh3,
		sgh4: d.sgh4,
		sh2:  d.sh2,
		sh3:  d.sh3,
		si2:  d.si2,
		si3:  d.si3,
		sl2:  d.sl2,
		sl3:  d.sl3,
		sl4:  d.sl4,
		xgh2: d.xgh2,
		xgh3: d.xgh3,
		xgh4: d.xgh4,
		xh2:  d.xh2,
		xh3:  d.xh3,
		xi2:  d.xi2,
		xi3:  d.xi3,
		xl2:  d.xl2,
		xl3:  d.xl3,
		xl4:  d.xl4,
		zmol: d.zmol,
		zmos: d.zmos,
	}

	epoch := r.deep.dpper(r.T, true, r.OpsMode, angles{
		ecc:  r.ecco,
		incl: r.inclo,
		node: r.nodeo,
		argp: r.argpo,
		mean: r.mo,
	})
	r.ecco, r.inclo, r.nodeo, r.argpo, r.mo = epoch.ecc, epoch.incl, epoch.node, epoch.argp, epoch.mean

	// the working angles start from zero, dsinit only adds the rates
	r.dsinit(&d, xpidot, eccsq, r.T, tc, angles{ecc: d.em, incl: r.inclo})
}
