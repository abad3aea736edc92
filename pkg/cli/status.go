package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/milstat-dev/milstat/pkg/cli/config"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStatus() *cli.Command {
	var unitRaw string
	var dateRaw string
	var dateOffset int
	var slotRaw string
	var appCfg config.AppConfig
	var gatewayCfg config.Gateway

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "unit",
			Aliases:     []string{"u"},
			Usage:       "Unit to display (e.g. C3)",
			Required:    true,
			Sources:     cli.EnvVars("MILSTAT_UNIT"),
			Destination: &unitRaw,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Date to display (YYYY-MM-DD, defaults to today)",
			Destination: &dateRaw,
		},
		&cli.IntFlag{
			Name:        "date-offset",
			Usage:       "Days relative to today (e.g. -1 for yesterday); ignored when --date is given",
			Destination: &dateOffset,
		},
		&cli.StringFlag{
			Name:        "time-slot",
			Usage:       "Time slot to display (HH:MM-HH:MM, defaults to the current hour)",
			Destination: &slotRaw,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, gatewayCfg.Flags()...)

	return &cli.Command{
		Name:    "status",
		Aliases: []string{"st"},
		Usage:   "Show the attendance grid for one unit and time slot",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			unit, err := types.ParseUnit(unitRaw)
			if err != nil {
				return err
			}

			date := types.DateWithOffset(dateOffset)
			if dateRaw != "" {
				if date, err = types.ParseDate(dateRaw); err != nil {
					return err
				}
			}

			var slot types.TimeSlot
			if slotRaw != "" {
				if slot, err = types.ParseTimeSlot(slotRaw); err != nil {
					return err
				}
			} else {
				var ok bool
				if slot, ok = types.SlotForHour(time.Now().Hour()); !ok {
					return goerr.New("current hour is outside the tracked window, specify --time-slot")
				}
			}

			grid, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load grid configuration")
			}

			gw, profiles, err := gatewayCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize gateway")
			}
			defer gw.Close() //nolint:errcheck // one-shot command

			uc := usecase.New(gw,
				usecase.WithProfileStore(profiles),
				usecase.WithGridStructure(grid),
				usecase.WithBlockingSync(),
			)

			rows, err := uc.Grid(ctx, unit, date, slot)
			if err != nil {
				return err
			}

			printGrid(unit, date, slot, rows)
			return nil
		},
	}
}

var (
	headerColor    = color.New(color.FgCyan, color.Bold)
	groupColor     = color.New(color.Bold)
	onDutyColor    = color.New(color.FgYellow)
	completedColor = color.New(color.FgGreen)
	progressColor  = color.New(color.FgBlue)
	vacantColor    = color.New(color.Faint)
)

func printGrid(unit types.Unit, date types.Date, slot types.TimeSlot, rows []model.GridRow) {
	headerColor.Printf("%s  %s  %s\n", unit.DisplayName(), date, slot)

	for _, row := range rows {
		groupColor.Printf("\n%s\n", row.Group)
		for _, cell := range row.Cells {
			name := ""
			if cell.Entry != nil {
				name = cell.Entry.Name
			}

			switch {
			case cell.Report != nil && cell.Report.IsOnDuty():
				onDutyColor.Printf("  %-24s %-16s %s\n", cell.Slot.Label, name, cell.Report.Content)
			case cell.Report != nil && cell.Report.Status == types.ReportStatusCompleted:
				completedColor.Printf("  %-24s %-16s %s\n", cell.Slot.Label, name, cell.Report.Content)
			case cell.Report != nil:
				progressColor.Printf("  %-24s %-16s %s\n", cell.Slot.Label, name, cell.Report.Content)
			case name != "":
				fmt.Printf("  %-24s %-16s\n", cell.Slot.Label, name)
			default:
				vacantColor.Printf("  %-24s (vacant)\n", cell.Slot.Label)
			}
		}
	}
}
