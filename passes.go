package sgp4

import (
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

const (
	defaultScanStep = time.Minute
	defaultDataStep = 10 * time.Second

	// bisection and golden-section stop below this interval
	passTimeTolerance = 100 * time.Millisecond
)

var invPhi = (math.Sqrt(5) - 1) / 2

// PassOptions configures FindPasses.
type PassOptions struct {
	Location     *Location
	Start, End   time.Time
	MinElevation float64       // degrees
	Step         time.Duration // coarse scan step, one minute when zero
	DataStep     time.Duration // DataPoints spacing, ten seconds when zero
	Logger       kitlog.Logger
}

type passFinder struct {
	sat  *Satellite
	opts PassOptions
}

// FindPasses predicts the passes over opts.Location between Start and End.
//
// Elevation is sampled every Step; AOS and LOS are refined by bisection and
// the culmination by golden-section search. A pass shorter than Step can
// fall between two samples and be missed. A pass in progress at Start or End
// is cut at the window.
//
// On a propagation error the passes found so far are returned with it.
func (s *Satellite) FindPasses(opts PassOptions) ([]PassDetails, error) {
	if err := opts.Location.validate(); err != nil {
		return nil, err
	}
	if !opts.End.After(opts.Start) {
		return nil, errors.New("end of the pass window must be after its start")
	}
	if opts.Step <= 0 {
		opts.Step = defaultScanStep
	}
	if opts.DataStep <= 0 {
		opts.DataStep = defaultDataStep
	}
	if opts.Logger == nil {
		opts.Logger = kitlog.NewNopLogger()
	}
	f := &passFinder{sat: s, opts: opts}
	logger := kitlog.With(opts.Logger, "subsys", "passes", "satellite", s.record.SatNum)

	var passes []PassDetails
	prevT := opts.Start
	prevEl, err := f.elevation(prevT)
	if err != nil {
		return nil, err
	}
	inPass := prevEl >= opts.MinElevation
	aos := opts.Start

	for !prevT.Equal(opts.End) {
		t := prevT.Add(opts.Step)
		if t.After(opts.End) {
			t = opts.End
		}
		el, err := f.elevation(t)
		if err != nil {
			return passes, err
		}

		above := el >= opts.MinElevation
		switch {
		case above && !inPass:
			if aos, err = f.crossing(prevT, t, true); err != nil {
				return passes, err
			}
			inPass = true
		case !above && inPass:
			los, err := f.crossing(prevT, t, false)
			if err != nil {
				return passes, err
			}
			p, err := f.details(aos, los)
			if err != nil {
				return passes, err
			}
			level.Debug(logger).Log("msg", "pass found", "aos", p.AOS, "los", p.LOS, "max_el", p.MaxElevation)
			passes = append(passes, *p)
			inPass = false
		}
		prevT = t
	}

	if inPass {
		p, err := f.details(aos, opts.End)
		if err != nil {
			return passes, err
		}
		passes = append(passes, *p)
	}
	level.Debug(logger).Log("msg", "pass search done", "start", opts.Start, "end", opts.End, "passes", len(passes))
	return passes, nil
}

func (f *passFinder) observe(t time.Time) (*Observation, Eci, error) {
	eci, err := f.sat.PropagateAt(t)
	if err != nil {
		return nil, eci, err
	}
	sv := StateVector{
		X: eci.Position.X, Y: eci.Position.Y, Z: eci.Position.Z,
		VX: eci.Velocity.X, VY: eci.Velocity.Y, VZ: eci.Velocity.Z,
	}
	obs, err := sv.GetLookAngle(f.opts.Location, t)
	return obs, eci, err
}

func (f *passFinder) elevation(t time.Time) (float64, error) {
	obs, _, err := f.observe(t)
	if err != nil {
		return 0, err
	}
	return obs.LookAngles.Elevation, nil
}

// crossing bisects [lo, hi] for the threshold crossing. It returns the
// bracket end that is above the threshold: the first visible instant when
// rising, the last one when setting.
func (f *passFinder) crossing(lo, hi time.Time, rising bool) (time.Time, error) {
	for hi.Sub(lo) > passTimeTolerance {
		mid := lo.Add(hi.Sub(lo) / 2)
		el, err := f.elevation(mid)
		if err != nil {
			return time.Time{}, err
		}
		if (el >= f.opts.MinElevation) == rising {
			hi = mid
		} else {
			lo = mid
		}
	}
	if rising {
		return hi, nil
	}
	return lo, nil
}

// culmination runs a golden-section search for the elevation maximum.
func (f *passFinder) culmination(a, b time.Time) (time.Time, error) {
	span := func(x float64) time.Time { return a.Add(time.Duration(x)) }
	lo, hi := 0.0, float64(b.Sub(a))
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	e1, err := f.elevation(span(x1))
	if err != nil {
		return time.Time{}, err
	}
	e2, err := f.elevation(span(x2))
	if err != nil {
		return time.Time{}, err
	}

	for hi-lo > float64(passTimeTolerance) {
		if e1 < e2 {
			lo, x1, e1 = x1, x2, e2
			x2 = lo + invPhi*(hi-lo)
			if e2, err = f.elevation(span(x2)); err != nil {
				return time.Time{}, err
			}
		} else {
			hi, x2, e2 = x2, x1, e1
			x1 = hi - invPhi*(hi-lo)
			if e1, err = f.elevation(span(x1)); err != nil {
				return time.Time{}, err
			}
		}
	}
	return span((lo + hi) / 2), nil
}

func (f *passFinder) details(aos, los time.Time) (*PassDetails, error) {
	tca, err := f.culmination(aos, los)
	if err != nil {
		return nil, err
	}

	var obs [3]*Observation
	for i, t := range []time.Time{aos, tca, los} {
		if obs[i], _, err = f.observe(t); err != nil {
			return nil, err
		}
	}

	p := &PassDetails{
		AOS:              aos,
		LOS:              los,
		AOSAzimuth:       obs[0].LookAngles.Azimuth,
		LOSAzimuth:       obs[2].LookAngles.Azimuth,
		MaxElevation:     obs[1].LookAngles.Elevation,
		MaxElevationAz:   obs[1].LookAngles.Azimuth,
		MaxElevationTime: tca,
		AOSObservation:   *obs[0],
		MaxElObservation: *obs[1],
		LOSObservation:   *obs[2],
		Duration:         los.Sub(aos),
	}

	for t := aos; ; t = t.Add(f.opts.DataStep) {
		if t.After(los) {
			t = los
		}
		o, eci, err := f.observe(t)
		if err != nil {
			return nil, err
		}
		p.DataPoints = append(p.DataPoints, PassDataPoint{
			Timestamp: t,
			Azimuth:   o.LookAngles.Azimuth,
			Elevation: o.LookAngles.Elevation,
			Range:     o.LookAngles.Range,
			RangeRate: o.LookAngles.RangeRate,
			Sunlit:    !IsEclipsed(eci.Position, t),
		})
		if t.Equal(los) {
			break
		}
	}
	return p, nil
}
