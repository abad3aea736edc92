package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/milstat-dev/milstat/pkg/cli/config"
	httpctrl "github.com/milstat-dev/milstat/pkg/controller/http"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/service/worker"
	"github.com/milstat-dev/milstat/pkg/usecase"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	var refreshUnits []string
	var appCfg config.AppConfig
	var gatewayCfg config.Gateway

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MILSTAT_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "refresh-interval",
			Usage:       "Interval for the background reload of unit state (0 disables the worker)",
			Value:       time.Minute,
			Sources:     cli.EnvVars("MILSTAT_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
		&cli.StringSliceFlag{
			Name:        "refresh-unit",
			Usage:       "Unit to refresh periodically (repeatable, e.g. --refresh-unit=C3)",
			Sources:     cli.EnvVars("MILSTAT_REFRESH_UNITS"),
			Destination: &refreshUnits,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			grid, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load grid configuration")
			}

			gw, profiles, err := gatewayCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gateway")
			}
			defer func() {
				if err := gw.Close(); err != nil {
					logging.Default().Error("failed to close gateway", "error", err.Error())
				}
			}()

			uc := usecase.New(gw,
				usecase.WithProfileStore(profiles),
				usecase.WithGridStructure(grid),
			)

			var refreshWorker *worker.RefreshWorker
			if refreshInterval > 0 {
				units, err := parseUnits(refreshUnits)
				if err != nil {
					return err
				}
				refreshWorker = worker.NewRefreshWorker(uc, units, refreshInterval)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start refresh worker")
				}
			}

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// parseUnits resolves the refresh unit flags, defaulting to every unit
func parseUnits(raw []string) ([]types.Unit, error) {
	if len(raw) == 0 {
		return types.AllUnits(), nil
	}
	units := make([]types.Unit, 0, len(raw))
	for _, r := range raw {
		unit, err := types.ParseUnit(r)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid refresh unit", goerr.V("unit", r))
		}
		units = append(units, unit)
	}
	return units, nil
}
