package sgp4

import (
	"strings"
	"sync"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSatellite(t *testing.T, input string, cfg Config) *Satellite {
	t.Helper()
	tle, err := ParseTLE(input)
	require.NoError(t, err)
	sat, err := NewSatellite(tle, cfg)
	require.NoError(t, err)
	return sat
}

func TestNewSatelliteDefaults(t *testing.T) {
	sat := newTestSatellite(t, issTLE, Config{})
	assert.Equal(t, "ISS (ZARYA)", sat.Name)
	assert.Equal(t, WGS84.Name, sat.Config.Gravity.Name)
	assert.Equal(t, OpsImproved, sat.Config.OpsMode)
	assert.Equal(t, NearEarth, sat.Record().Method)

	_, err := NewSatellite(nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidTLE)
}

func TestSatelliteGeodeticAtEpoch(t *testing.T) {
	sat := newTestSatellite(t, issTLE, Config{})
	eci, err := sat.PropagateMinutes(0)
	require.NoError(t, err)
	assert.True(t, eci.DateTime.Equal(sat.Epoch()))

	// 2025-05-18 08:53:29.535936 UTC, Lat 32.740, Lon -125.293, Alt 418.256
	lat, lon, alt := eci.ToGeodetic()
	assert.InDelta(t, 32.740, lat, 0.05)
	assert.InDelta(t, -125.293, lon, 0.05)
	assert.InDelta(t, 418.256, alt, 1.0)
}

func TestPropagateAtMatchesMinutes(t *testing.T) {
	sat := newTestSatellite(t, issTLE, Config{})
	at := sat.Epoch().Add(90 * time.Minute)

	a, err := sat.PropagateAt(at)
	require.NoError(t, err)
	b, err := sat.PropagateMinutes(90)
	require.NoError(t, err)

	assert.InDelta(t, 90, sat.MinutesSinceEpoch(at), 1e-4)
	assertVector(t, b.Position, a.Position, 0.01)
	assertVector(t, b.Velocity, a.Velocity, 1e-5)
	assert.True(t, a.DateTime.Equal(at))
}

func TestSatelliteMatchesGoSatellite(t *testing.T) {
	lines := strings.Split(issTLE, "\n")
	ref := satellite.TLEToSat(lines[1], lines[2], satellite.GravityWGS84)
	sat := newTestSatellite(t, issTLE, Config{Gravity: WGS84})

	// go-satellite drops the fractional seconds of the epoch, so elapsed
	// minutes are counted from its truncated epoch on both sides
	refEpoch := sat.Epoch().Truncate(time.Second)
	require.NotEqual(t, refEpoch, sat.Epoch())

	start := time.Date(2025, 5, 18, 9, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 47 * time.Minute, 6 * time.Hour, 3 * 24 * time.Hour, -12 * time.Hour} {
		at := start.Add(offset)
		pos, vel := satellite.Propagate(ref, at.Year(), int(at.Month()), at.Day(), at.Hour(), at.Minute(), at.Second())

		eci, err := sat.PropagateMinutes(at.Sub(refEpoch).Minutes())
		require.NoError(t, err)
		assertVector(t, Vector{X: pos.X, Y: pos.Y, Z: pos.Z}, eci.Position, 1.0, "at %v", at)
		assertVector(t, Vector{X: vel.X, Y: vel.Y, Z: vel.Z}, eci.Velocity, 1e-3, "at %v", at)
	}
}

func TestSatelliteConcurrentPropagation(t *testing.T) {
	tle, err := ParseTLE(tle11801)
	require.NoError(t, err)
	sat, err := NewSatellite(tle, Config{Gravity: WGS72, OpsMode: OpsAFSPC})
	require.NoError(t, err)

	want := make([]Eci, 8)
	for i := range want {
		want[i], err = sat.PropagateMinutes(float64(i) * 180)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	got := make([]Eci, len(want))
	errs := make([]error, len(want))
	for i := range want {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = sat.PropagateMinutes(float64(i) * 180)
		}(i)
	}
	wg.Wait()

	for i := range want {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i], got[i])
	}
}

func TestSatelliteErrorsCarrySatNum(t *testing.T) {
	tle, err := ParseTLE(tle88888)
	require.NoError(t, err)
	tle.Bstar = 0.5
	sat, err := NewSatellite(tle, Config{})
	require.NoError(t, err)

	_, err = sat.PropagateMinutes(1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEccentricity)
	assert.Contains(t, err.Error(), "88888")
	assert.Equal(t, CodeEccentricity, CodeOf(err))
}
