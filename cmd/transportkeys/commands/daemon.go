package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"transportkeys/internal/statusapi"
)

// rotationInterval is how often the daemon checks for a new period.
func rotationInterval(period time.Duration) time.Duration {
	return min(period, time.Minute)
}

func daemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Keep key sets rotated and serve status and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := wire.Log
			srv := &http.Server{
				Addr:              cfg.MetricsAddr,
				Handler:           statusapi.NewHandler(wire.Keys, log, wire.Metrics),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				log.Info("listening on " + cfg.MetricsAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			ticker := time.NewTicker(rotationInterval(cfg.PeriodLength))
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					log.Info("shutting down")
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return srv.Shutdown(shutdownCtx)
				case err := <-errc:
					return err
				case <-ticker.C:
					if err := wire.Keys.RotateAll(); err != nil {
						log.Error(err, "rotate")
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "listen address for status and /metrics")
	return cmd
}
