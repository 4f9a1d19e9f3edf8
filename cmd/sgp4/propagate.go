package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/akhenakh/sgp4/v2"
)

func newPropagateCmd(a *app) *cobra.Command {
	var (
		tlePath string
		from    string
		minutes float64
		step    float64
	)
	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Print TEME states and geodetic positions over a time span",
		Long: `Propagate every element set of a TLE file from --from, or from each
set's epoch when omitted, over --minutes every --step minutes.

Examples:
  sgp4 propagate --tle stations.txt --minutes 90 --step 5
  sgp4 propagate --tle - --from 2025-05-18T12:00:00Z < iss.tle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 || minutes < 0 {
				return errors.New("--step must be positive and --minutes not negative")
			}
			var start time.Time
			if from != "" {
				t, err := time.Parse(time.RFC3339, from)
				if err != nil {
					return errors.Wrap(err, "parsing --from")
				}
				start = t
			}

			sats, err := a.satellites(cmd, tlePath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			for _, sat := range sats {
				rec := sat.Record()
				fmt.Fprintf(w, "# %s %s %s epoch %s\n", rec.SatNum, sat.Name, rec.Method, sat.Epoch().Format(time.RFC3339Nano))
				fmt.Fprintln(w, "time\ttsince\tx\ty\tz\tvx\tvy\tvz\tlat\tlon\talt\t")

				for m := 0.0; m <= minutes; m += step {
					var (
						eci sgp4.Eci
						err error
					)
					if start.IsZero() {
						eci, err = sat.PropagateMinutes(m)
					} else {
						eci, err = sat.PropagateAt(start.Add(time.Duration(m * float64(time.Minute))))
					}
					tsince := sat.MinutesSinceEpoch(eci.DateTime)
					if err != nil {
						// later states of this set would fail the same way
						level.Warn(a.logger).Log("msg", "propagation stopped", "satellite", rec.SatNum, "tsince", tsince, "err", err)
						break
					}
					lat, lon, alt := eci.ToGeodetic()
					fmt.Fprintf(w, "%s\t%.3f\t%.6f\t%.6f\t%.6f\t%.9f\t%.9f\t%.9f\t%.4f\t%.4f\t%.3f\t\n",
						eci.DateTime.Format(time.RFC3339), tsince,
						eci.Position.X, eci.Position.Y, eci.Position.Z,
						eci.Velocity.X, eci.Velocity.Y, eci.Velocity.Z,
						lat, lon, alt)
				}
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&tlePath, "tle", "", "TLE file, - for stdin")
	f.StringVar(&from, "from", "", "start time, RFC 3339 (default: element set epoch)")
	f.Float64Var(&minutes, "minutes", 90, "time span in minutes")
	f.Float64Var(&step, "step", 10, "step in minutes")
	return cmd
}
