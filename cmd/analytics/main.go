// cmd/analytics/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/store"
	"github.com/andresuchdata/sales-dashboard/backend-go/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var criteriaFlags = []string{"status", "collection", "branch", "month", "year", "department", "category"}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	flags := []cli.Flag{
		&cli.StringFlag{Name: "driver", Usage: "Record store to read (mongo or postgres)", EnvVars: []string{"SOURCE_DRIVER"}},
		&cli.StringFlag{Name: "view", Usage: "Dashboard to print: sales or invoices", Value: "sales"},
		&cli.StringFlag{Name: "date", Usage: "Reference date (YYYY-MM-DD) used for overdue checks; defaults to today"},
	}
	for _, name := range criteriaFlags {
		flags = append(flags, &cli.StringFlag{Name: name, Usage: "Filter by " + name})
	}

	app := &cli.App{
		Name:  "analytics",
		Usage: "Offline dashboard reports",
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "Print dashboard JSON for the configured record store",
				Flags:  flags,
				Action: runReport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("analytics failed")
	}
}

func runReport(c *cli.Context) error {
	cfg := config.Load()
	if driver := c.String("driver"); driver != "" {
		cfg.Source.Driver = driver
	}

	criteria, err := domain.ParseCriteria(c.String)
	if err != nil {
		return err
	}

	loc, err := clock.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return err
	}
	clk, err := reportClock(c.String("date"), loc)
	if err != nil {
		return err
	}

	records, err := store.Open(c.Context, cfg, loc)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		records.Close(ctx)
	}()

	return writeReport(c.Context, os.Stdout, records, clk, c.String("view"), criteria, service.Options{
		DefaultYear: cfg.App.DefaultYear,
		OrderLimit:  cfg.App.OrderTableSize,
	})
}

func reportClock(date string, loc *time.Location) (clock.Clock, error) {
	if date == "" {
		return clock.New(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return clock.Fixed(t), nil
}

func writeReport(ctx context.Context, w io.Writer, source repository.RecordSource, clk clock.Clock, view string, criteria domain.Criteria, opts service.Options) error {
	mapper := analytics.NewMapper(analytics.DefaultTaxonomy())
	noop := cache.NewNoopDashboardCache()

	var report interface{}
	switch view {
	case "sales", "":
		dashboard, err := service.NewSalesService(source, noop, clk, mapper, opts).GetDashboard(ctx, criteria)
		if err != nil {
			return err
		}
		report = dashboard
	case "invoices", "invoice":
		dashboard, err := service.NewInvoiceService(source, noop, clk, mapper, opts).GetDashboard(ctx, criteria)
		if err != nil {
			return err
		}
		report = dashboard
	default:
		return fmt.Errorf("unknown view %q (want sales or invoices)", view)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
