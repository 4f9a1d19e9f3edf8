package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/akhenakh/sgp4/v2/internal/metrics"
	"github.com/akhenakh/sgp4/v2/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve propagation and pass prediction over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.cfg.Satellite()
			if err != nil {
				return err
			}
			m, err := metrics.NewCollector(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(server.Options{
				Addr:      a.cfg.Server.Addr,
				Logger:    a.logger,
				Metrics:   m,
				Satellite: sc,
				RateLimit: rate.Limit(a.cfg.Server.RateLimit),
				Burst:     a.cfg.Server.Burst,
				PassStep:  a.cfg.Passes.Step,
				DataStep:  a.cfg.Passes.DataStep,
			}).Run(ctx)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	bindFlags(a.v, cmd.Flags(), map[string]string{"server.addr": "addr"})
	return cmd
}
