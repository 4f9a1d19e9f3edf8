package sgp4

import (
	"time"

	"github.com/pkg/errors"
)

// Config selects the constants and operation mode used for a satellite.
// The zero value means WGS-84 and improved mode.
type Config struct {
	Gravity GravityModel
	OpsMode OpsMode
}

func (c Config) withDefaults() Config {
	if c.Gravity.XKE == 0 {
		c.Gravity = WGS84
	}
	if c.OpsMode != OpsAFSPC {
		c.OpsMode = OpsImproved
	}
	return c
}

// Satellite ties an initialized record to its element set and epoch. It is
// safe for concurrent use: every propagation runs on a private copy of the
// record.
type Satellite struct {
	Name   string
	TLE    *TLE
	Config Config

	epoch  time.Time
	record *Record
}

// NewSatellite initializes the propagator for tle.
func NewSatellite(tle *TLE, cfg Config) (*Satellite, error) {
	if tle == nil {
		return nil, errors.Wrap(ErrInvalidTLE, "nil TLE")
	}
	cfg = cfg.withDefaults()
	r, err := NewRecord(cfg.Gravity, cfg.OpsMode, tle.Elements())
	if err != nil {
		return nil, err
	}
	return &Satellite{
		Name:   tle.Name,
		TLE:    tle,
		Config: cfg,
		epoch:  tle.EpochTime(),
		record: r,
	}, nil
}

// Epoch returns the element set epoch.
func (s *Satellite) Epoch() time.Time { return s.epoch }

// Record returns a copy of the initialized record.
func (s *Satellite) Record() *Record { return s.record.Clone() }

// MinutesSinceEpoch returns the propagation time of t.
func (s *Satellite) MinutesSinceEpoch(t time.Time) float64 {
	return (JDay(t) - s.record.EpochJD) * minutesPerDay
}

// PropagateMinutes returns the inertial state tsince minutes after epoch.
// As with Record.Propagate, a decay error comes with the computed state.
func (s *Satellite) PropagateMinutes(tsince float64) (Eci, error) {
	t := s.epoch.Add(time.Duration(tsince * float64(time.Minute)))
	return s.propagate(tsince, t)
}

// PropagateAt returns the inertial state at t.
func (s *Satellite) PropagateAt(t time.Time) (Eci, error) {
	return s.propagate(s.MinutesSinceEpoch(t), t)
}

func (s *Satellite) propagate(tsince float64, t time.Time) (Eci, error) {
	sv, err := s.record.Clone().Propagate(tsince)
	eci := Eci{DateTime: t, Position: sv.Position(), Velocity: sv.Velocity()}
	if err != nil {
		return eci, errors.Wrapf(err, "satellite %s", s.record.SatNum)
	}
	return eci, nil
}
