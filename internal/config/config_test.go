package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akhenakh/sgp4/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "wgs84", cfg.Gravity)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Passes.Step)
	assert.Equal(t, 10*time.Second, cfg.Passes.DataStep)
	assert.Equal(t, 10.0, cfg.Passes.MinElevation)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 20, cfg.Server.Burst)

	sc, err := cfg.Satellite()
	require.NoError(t, err)
	assert.Equal(t, sgp4.WGS84.Name, sc.Gravity.Name)
	assert.Equal(t, sgp4.OpsImproved, sc.OpsMode)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgp4.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
gravity: wgs72
opsmode: afspc
observer:
  latitude: 46.83
  longitude: -71.25
  altitude: 80
passes:
  step: 30s
  minelevation: 5
server:
  addr: 127.0.0.1:9000
`), 0o600))
	t.Setenv("SGP4_SERVER_BURST", "3")
	t.Setenv("SGP4_LOG_LEVEL", "debug")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 46.83, cfg.Observer.Latitude)
	assert.Equal(t, -71.25, cfg.Observer.Longitude)
	assert.Equal(t, 80.0, cfg.Observer.Altitude)
	assert.Equal(t, 30*time.Second, cfg.Passes.Step)
	assert.Equal(t, 5.0, cfg.Passes.MinElevation)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Server.Burst)
	assert.Equal(t, "debug", cfg.Log.Level)

	sc, err := cfg.Satellite()
	require.NoError(t, err)
	assert.Equal(t, sgp4.WGS72.Name, sc.Gravity.Name)
	assert.Equal(t, sgp4.OpsAFSPC, sc.OpsMode)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("HOME", t.TempDir())
	v := New()
	v.Set("opsmode", "x")
	_, err = Load(v, "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "sgp4.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gravity: egm96\n"), 0o600))
	_, err = Load(New(), path)
	assert.ErrorIs(t, err, sgp4.ErrUnknownGravityModel)
}
