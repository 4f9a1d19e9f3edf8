package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/akhenakh/sgp4/v2"
)

func newPassesCmd(a *app) *cobra.Command {
	var (
		tlePath string
		start   string
		svgDir  string
	)
	cmd := &cobra.Command{
		Use:   "passes",
		Short: "List passes over an observer and draw their sky track",
		Long: `Predict the passes of every element set of a TLE file over the observer
during --hours from --start (default now).

Examples:
  sgp4 passes --tle iss.tle --lat 46.83 --lon -71.25 --alt 80
  sgp4 passes --tle iss.tle --lat 46.83 --lon -71.25 --min-elevation 20 --svg plots`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := time.Now().UTC()
			if start != "" {
				t, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return errors.Wrap(err, "parsing --start")
				}
				from = t
			}
			if svgDir != "" {
				if err := os.MkdirAll(svgDir, 0o755); err != nil {
					return errors.Wrap(err, "creating svg directory")
				}
			}

			sats, err := a.satellites(cmd, tlePath)
			if err != nil {
				return err
			}

			cfg := a.cfg
			loc := cfg.Observer
			out := cmd.OutOrStdout()
			for _, sat := range sats {
				passes, err := sat.FindPasses(sgp4.PassOptions{
					Location:     &loc,
					Start:        from,
					End:          from.Add(time.Duration(cfg.Passes.Hours * float64(time.Hour))),
					MinElevation: cfg.Passes.MinElevation,
					Step:         cfg.Passes.Step,
					DataStep:     cfg.Passes.DataStep,
					Logger:       a.logger,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "Predicted passes for %s over Lat:%.2f Lon:%.2f:\n", sat.Name, loc.Latitude, loc.Longitude)
				if len(passes) == 0 {
					fmt.Fprintln(out, "No passes found in the given time window.")
				}
				for i, pass := range passes {
					fmt.Fprintf(out, "Pass %d:\n", i+1)
					fmt.Fprintf(out, "  AOS: %s (Az: %.1f°), El: %.1f°\n", pass.AOS.Format(time.RFC3339), pass.AOSAzimuth, pass.AOSObservation.LookAngles.Elevation)
					fmt.Fprintf(out, "  Max Elevation: %.1f° (Az: %.1f° at %s)\n", pass.MaxElevation, pass.MaxElevationAz, pass.MaxElevationTime.Format(time.RFC3339))
					fmt.Fprintf(out, "  LOS: %s (Az: %.1f°), El: %.1f°\n", pass.LOS.Format(time.RFC3339), pass.LOSAzimuth, pass.LOSObservation.LookAngles.Elevation)
					fmt.Fprintf(out, "  Duration: %v\n", pass.Duration.Truncate(time.Second))

					if svgDir == "" {
						continue
					}
					name := filepath.Join(svgDir, fmt.Sprintf("%s_pass_%d.svg", sat.Record().SatNum, i+1))
					if err := os.WriteFile(name, []byte(pass.GeneratePassPolarSVG()), 0o644); err != nil {
						return errors.Wrap(err, "writing svg")
					}
					level.Debug(a.logger).Log("msg", "polar plot saved", "file", name)
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&tlePath, "tle", "", "TLE file, - for stdin")
	f.StringVar(&start, "start", "", "window start, RFC 3339 (default now)")
	f.StringVar(&svgDir, "svg", "", "write a polar plot per pass in this directory")
	f.Float64("lat", 0, "observer latitude, degrees north")
	f.Float64("lon", 0, "observer longitude, degrees east")
	f.Float64("alt", 0, "observer altitude, meters")
	f.Float64("hours", 24, "window length in hours")
	f.Float64("min-elevation", 10, "minimum elevation in degrees")
	f.Duration("scan-step", time.Minute, "coarse scan step")
	bindFlags(a.v, f, map[string]string{
		"observer.latitude":   "lat",
		"observer.longitude":  "lon",
		"observer.altitude":   "alt",
		"passes.hours":        "hours",
		"passes.minelevation": "min-elevation",
		"passes.step":         "scan-step",
	})
	return cmd
}
