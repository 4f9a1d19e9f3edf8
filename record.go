package sgp4

// Record is the per-satellite model state built by NewRecord and advanced by
// Propagate.
//
// A Record is not safe for concurrent Propagate calls: deep-space records
// rewrite a few coefficients on every call. Use Clone to get an independent
// copy, or go through Satellite which does it for you.
type Record struct {
	SatNum  string
	EpochJD float64 // Julian date of the element epoch
	Epoch   float64 // days since 1950 Jan 0.0
	OpsMode OpsMode
	Method  Method
	Gravity GravityModel

	// Elements as given to NewRecord. The working copies below may be
	// modified by the deep-space initialization.
	Elements Elements

	// T is the elapsed time of the last call in minutes, Error its code.
	T     float64
	Error ErrorCode

	// mean elements at epoch
	ecco, inclo, nodeo, argpo, mo float64
	no                            float64 // Brouwer mean motion (rad/min)
	bstar                         float64
	gsto                          float64

	// near earth
	isimp                         bool
	aycof, con41, cc1, cc4, cc5   float64
	d2, d3, d4                    float64
	delmo, eta, argpdot, omgcof   float64
	sinmao, t2cof, t3cof, t4cof   float64
	t5cof, x1mth2, x7thm1, mdot   float64
	nodedot, xlcof, xmcof, nodecf float64

	// deep space
	deep deepSpace
}

// deepSpace holds the lunar-solar coefficients and the resonance state.
type deepSpace struct {
	irez                                       int
	d2201, d2211, d3210, d3222, d4410          float64
	d4422, d5220, d5232, d5421, d5433          float64
	dedt, del1, del2, del3, didt, dmdt         float64
	dnodt, domdt                               float64
	e3, ee2, peo, pgho, pho, pinco, plo        float64
	se2, se3, sgh2, sgh3, sgh4, sh2, sh3       float64
	si2, si3, sl2, sl3, sl4                    float64
	xfact, xgh2, xgh3, xgh4, xh2, xh3          float64
	xi2, xi3, xl2, xl3, xl4, xlamo, zmol, zmos float64

	// integrator seed, read every call and never advanced in place
	atime, xli, xni float64
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Resonance returns the resonance class of a deep-space record: 0 for none,
// 1 for synchronous (about one revolution per day) and 2 for half-day orbits.
func (r *Record) Resonance() int {
	return r.deep.irez
}

// MeanMotion returns the Brouwer (un-Kozai'd) mean motion in rad/min.
func (r *Record) MeanMotion() float64 {
	return r.no
}

// SemiMajorAxis returns the Brouwer semi-major axis in km.
func (r *Record) SemiMajorAxis() float64 {
	return r.ao() * r.Gravity.Radius
}

func (r *Record) ao() float64 {
	return pow23(r.Gravity.XKE / r.no)
}

// Period returns the anomalistic period in minutes.
func (r *Record) Period() float64 {
	return twoPi / r.no
}

// GSTEpoch returns the Greenwich sidereal time at epoch in radians.
func (r *Record) GSTEpoch() float64 {
	return r.gsto
}
