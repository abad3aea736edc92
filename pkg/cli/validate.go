package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/cli/config"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var unitRaw string
	var appCfg config.AppConfig
	var gatewayCfg config.Gateway

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "check-unit",
		Usage:       "Unit to fetch as a backend connectivity check (skipped when omitted)",
		Destination: &unitRaw,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the grid configuration and optionally check backend connectivity",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			grid, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "grid configuration validation failed")
			}

			logger.Info("Grid configuration validation passed",
				"path", appCfg.Path(),
				"slot_count", len(grid.Slots),
			)

			if unitRaw == "" {
				logger.Info("No check unit specified, skipping backend connectivity check")
				return nil
			}

			unit, err := types.ParseUnit(unitRaw)
			if err != nil {
				return err
			}

			gw, _, err := gatewayCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gateway")
			}
			defer func() {
				if err := gw.Close(); err != nil {
					logger.Error("failed to close gateway", "error", err.Error())
				}
			}()

			roster, err := gw.Roster().List(ctx, unit)
			if err != nil {
				return goerr.Wrap(err, "backend connectivity check failed", goerr.V("unit", unit))
			}

			logger.Info("Backend connectivity check passed",
				"unit", unit,
				"roster_count", len(roster),
			)
			return nil
		},
	}
}
