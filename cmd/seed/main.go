package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/events"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/ingest"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/store"
	"github.com/andresuchdata/sales-dashboard/backend-go/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type contextKey string

const (
	storeKey     contextKey = "store"
	publisherKey contextKey = "publisher"
)

func newDriverFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "driver",
		Usage:   "Record store to write to (mongo or postgres)",
		EnvVars: []string{"SOURCE_DRIVER"},
	}
}

func newDownloadDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "download-dir",
		Usage:   "Local directory for downloaded import files",
		EnvVars: []string{"APP_DOWNLOAD_DIR"},
	}
}

// initStore opens the record store and, when enabled, the refresh publisher.
func initStore(c *cli.Context) error {
	cfg := config.Load()
	if driver := c.String("driver"); driver != "" {
		cfg.Source.Driver = driver
	}

	loc, err := clock.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return err
	}

	records, err := store.Open(c.Context, cfg, loc)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	c.Context = context.WithValue(c.Context, storeKey, records)

	if cfg.AMQP.Enabled {
		client, err := events.NewClient(cfg.AMQP)
		if err != nil {
			log.Warn().Err(err).Msg("seed: amqp unavailable, refresh events will not be published")
		} else {
			c.Context = context.WithValue(c.Context, publisherKey, client)
		}
	}
	return nil
}

func closeStore(c *cli.Context) error {
	if client, ok := c.Context.Value(publisherKey).(*events.Client); ok && client != nil {
		client.Close()
	}
	if records, ok := c.Context.Value(storeKey).(repository.Store); ok && records != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return records.Close(ctx)
	}
	return nil
}

func storeFrom(c *cli.Context) (repository.Store, error) {
	records, ok := c.Context.Value(storeKey).(repository.Store)
	if !ok || records == nil {
		return nil, fmt.Errorf("record store is not initialised")
	}
	return records, nil
}

func importerFrom(c *cli.Context) (*ingest.Importer, error) {
	records, err := storeFrom(c)
	if err != nil {
		return nil, err
	}
	importer := ingest.NewImporter(records)
	if client, ok := c.Context.Value(publisherKey).(*events.Client); ok && client != nil {
		importer.WithPublisher(client)
	}
	return importer, nil
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Server.Mode, cfg.Server.LogLevel)

	app := &cli.App{
		Name:  "seed",
		Usage: "Load sales orders and invoices into the dashboard store",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Apply PostgreSQL migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "Database connection URL",
						EnvVars: []string{"DATABASE_URL"},
					},
				},
				Action: func(c *cli.Context) error {
					dbURL := c.String("db-url")
					if dbURL == "" {
						dbURL = cfg.Database.URL()
					}
					if err := postgres.RunMigrations(dbURL); err != nil {
						return err
					}
					log.Info().Msg("seed: migrations applied")
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "Import one CSV or XLSX export",
				Flags: []cli.Flag{
					newDriverFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the CSV or XLSX file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Record kind: sales or invoice (guessed from the file name when empty)",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Sales target: sales, automotive or pg",
						Value: string(repository.TargetSales),
					},
				},
				Before: initStore,
				After:  closeStore,
				Action: runImport,
			},
			{
				Name:  "sync-bucket",
				Usage: "Import every CSV/XLSX object under a bucket prefix",
				Flags: []cli.Flag{
					newDriverFlag(),
					newDownloadDirFlag(),
					&cli.StringFlag{
						Name:    "prefix",
						Usage:   "Object key prefix",
						EnvVars: []string{"STORAGE_PREFIX"},
					},
					&cli.StringFlag{
						Name:  "object",
						Usage: "Import a single object key instead of the whole prefix",
					},
				},
				Before: initStore,
				After:  closeStore,
				Action: runSyncBucket,
			},
			{
				Name:  "sync-drive",
				Usage: "Import every CSV/XLSX file from a Google Drive folder",
				Flags: []cli.Flag{
					newDriverFlag(),
					newDownloadDirFlag(),
					&cli.StringFlag{
						Name:    "folder-path",
						Usage:   "Drive folder path, e.g. ERP/exports",
						EnvVars: []string{"DRIVE_FOLDER_PATH"},
					},
					&cli.StringFlag{
						Name:  "folder-id",
						Usage: "Drive folder id; takes precedence over --folder-path",
					},
				},
				Before: initStore,
				After:  closeStore,
				Action: runSyncDrive,
			},
			{
				Name:  "sample",
				Usage: "Insert the demo dataset",
				Flags: []cli.Flag{
					newDriverFlag(),
					&cli.IntFlag{
						Name:  "year",
						Usage: "Year the demo records are dated in (default: current year)",
					},
				},
				Before: initStore,
				After:  closeStore,
				Action: runSample,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runImport(c *cli.Context) error {
	importer, err := importerFrom(c)
	if err != nil {
		return err
	}

	file := c.String("file")
	target, err := importTarget(file, c.String("kind"), c.String("collection"))
	if err != nil {
		return err
	}

	result, err := importer.ImportFile(c.Context, file, target)
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s: %d parsed, %d skipped, %d written\n", result.File, result.Target, result.Parsed, result.Skipped, result.Written)
	return nil
}

// importTarget resolves the --kind and --collection flags. An empty kind
// falls back to the file name.
func importTarget(file, kind, collection string) (repository.Target, error) {
	switch kind {
	case "":
		return ingest.TargetForFile(file), nil
	case "invoice", "invoices":
		return repository.TargetInvoices, nil
	case "sales", "sales-order", "order":
		target, err := repository.ParseTarget(collection)
		if err != nil {
			return "", err
		}
		if target == repository.TargetInvoices {
			return "", fmt.Errorf("collection %q is not a sales order target", collection)
		}
		return target, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want sales or invoice)", kind)
	}
}

func runSample(c *cli.Context) error {
	records, err := storeFrom(c)
	if err != nil {
		return err
	}

	year := c.Int("year")
	if year == 0 {
		year = time.Now().Year()
	}

	orders := sampleSalesOrders(year)
	for _, batch := range sampleBatches {
		n, err := records.UpsertSalesOrders(c.Context, batch.target, orders[batch.target])
		if err != nil {
			return fmt.Errorf("failed to insert sample %s orders: %w", batch.target, err)
		}
		log.Info().Str("target", string(batch.target)).Int("written", n).Msg("seed: sample orders inserted")
	}

	n, err := records.UpsertInvoices(c.Context, sampleInvoices(year))
	if err != nil {
		return fmt.Errorf("failed to insert sample invoices: %w", err)
	}
	log.Info().Int("written", n).Int("year", year).Msg("seed: sample invoices inserted")

	if client, ok := c.Context.Value(publisherKey).(*events.Client); ok && client != nil {
		if err := client.PublishRefresh(c.Context, "sample data"); err != nil {
			log.Warn().Err(err).Msg("seed: failed to publish refresh event")
		}
	}
	return nil
}
