// Package config loads the sgp4 tool settings with viper: defaults, then an
// optional sgp4.yaml, then SGP4_* environment variables, then bound flags.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/akhenakh/sgp4/v2"
	"github.com/akhenakh/sgp4/v2/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Gravity  string
	OpsMode  string
	Log      logging.Config
	Observer sgp4.Location
	Passes   Passes
	Server   Server
}

// Passes holds the pass search defaults.
type Passes struct {
	Step         time.Duration
	DataStep     time.Duration
	MinElevation float64
	Hours        float64
}

// Server holds the HTTP service settings.
type Server struct {
	Addr      string
	RateLimit float64 // requests per second per client IP
	Burst     int
}

// New returns a viper instance with the defaults and the environment
// overrides in place. Flags are bound on it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("gravity", "wgs84")
	v.SetDefault("opsmode", "improved")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "logfmt")
	v.SetDefault("observer.latitude", 0.0)
	v.SetDefault("observer.longitude", 0.0)
	v.SetDefault("observer.altitude", 0.0)
	v.SetDefault("passes.step", "1m")
	v.SetDefault("passes.datastep", "10s")
	v.SetDefault("passes.minelevation", 10.0)
	v.SetDefault("passes.hours", 24.0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.ratelimit", 10.0)
	v.SetDefault("server.burst", 20)

	v.SetEnvPrefix("SGP4")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or sgp4.yaml from the working directory, $HOME/.sgp4 and
// /etc/sgp4 when path is empty. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sgp4")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.sgp4")
		}
		v.AddConfigPath("/etc/sgp4")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	cfg := &Config{
		Gravity: v.GetString("gravity"),
		OpsMode: v.GetString("opsmode"),
		Log: logging.Config{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Observer: sgp4.Location{
			Latitude:  v.GetFloat64("observer.latitude"),
			Longitude: v.GetFloat64("observer.longitude"),
			Altitude:  v.GetFloat64("observer.altitude"),
		},
		Passes: Passes{
			Step:         v.GetDuration("passes.step"),
			DataStep:     v.GetDuration("passes.datastep"),
			MinElevation: v.GetFloat64("passes.minelevation"),
			Hours:        v.GetFloat64("passes.hours"),
		},
		Server: Server{
			Addr:      v.GetString("server.addr"),
			RateLimit: v.GetFloat64("server.ratelimit"),
			Burst:     v.GetInt("server.burst"),
		},
	}
	if _, err := cfg.Satellite(); err != nil {
		return nil, err
	}
	if cfg.Server.RateLimit <= 0 || cfg.Server.Burst <= 0 {
		return nil, errors.Errorf("rate limit %v and burst %d must be positive", cfg.Server.RateLimit, cfg.Server.Burst)
	}
	return cfg, nil
}

// Satellite returns the propagator settings.
func (c *Config) Satellite() (sgp4.Config, error) {
	grav, err := sgp4.GravityModelByName(c.Gravity)
	if err != nil {
		return sgp4.Config{}, err
	}
	ops, err := sgp4.ParseOpsMode(c.OpsMode)
	if err != nil {
		return sgp4.Config{}, err
	}
	return sgp4.Config{Gravity: grav, OpsMode: ops}, nil
}
