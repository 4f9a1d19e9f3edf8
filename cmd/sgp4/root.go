package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/akhenakh/sgp4/v2"
	"github.com/akhenakh/sgp4/v2/internal/config"
	"github.com/akhenakh/sgp4/v2/internal/logging"
)

// app is shared by the subcommands once the root pre-run resolved it.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  kitlog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "sgp4",
		Short:         "Propagate TLE element sets and predict passes with SGP4/SDP4",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default sgp4.yaml in ., $HOME/.sgp4 or /etc/sgp4)")
	pf.String("gravity", "wgs84", "gravity model: wgs72old, wgs72 or wgs84")
	pf.String("opsmode", "improved", "operation mode: afspc or improved")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "logfmt", "log format: logfmt or json")
	bindFlags(a.v, pf, map[string]string{
		"gravity":    "gravity",
		"opsmode":    "opsmode",
		"log.level":  "log-level",
		"log.format": "log-format",
	})

	root.AddCommand(newPropagateCmd(a), newPassesCmd(a), newServeCmd(a))
	return root
}

// bindFlags maps viper keys to flag names.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// satellites loads every element set of a TLE file, "-" reading stdin.
func (a *app) satellites(cmd *cobra.Command, path string) ([]*sgp4.Satellite, error) {
	if path == "" {
		return nil, errors.New("--tle is required")
	}
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "opening TLE file")
		}
		defer f.Close()
		r = f
	}

	sets, err := splitTLESets(r)
	if err != nil {
		return nil, err
	}
	sc, err := a.cfg.Satellite()
	if err != nil {
		return nil, err
	}
	sats := make([]*sgp4.Satellite, 0, len(sets))
	for _, set := range sets {
		tle, err := sgp4.ParseTLE(set)
		if err != nil {
			return nil, err
		}
		sat, err := sgp4.NewSatellite(tle, sc)
		if err != nil {
			return nil, err
		}
		sats = append(sats, sat)
	}
	return sats, nil
}

// splitTLESets groups a catalog into element sets, each line 2 closing one.
func splitTLESets(r io.Reader) ([]string, error) {
	var (
		sets    []string
		pending []string
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		pending = append(pending, line)
		if strings.HasPrefix(line, "2 ") {
			sets = append(sets, strings.Join(pending, "\n"))
			pending = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading TLE file")
	}
	if len(pending) > 0 || len(sets) == 0 {
		return nil, errors.Wrap(sgp4.ErrInvalidTLE, "incomplete element set in TLE file")
	}
	return sets, nil
}
