package main

import (
	"fmt"
	"path/filepath"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/drive"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func downloadDir(c *cli.Context, cfg *config.Config, sub string) string {
	dir := c.String("download-dir")
	if dir == "" {
		dir = cfg.App.DownloadDir
	}
	return filepath.Join(dir, sub)
}

func runSyncBucket(c *cli.Context) error {
	cfg := config.Load()

	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}
	downloader, err := storage.NewDownloader(client, downloadDir(c, cfg, "bucket"))
	if err != nil {
		return err
	}

	paths, err := downloader.Download(c.Context, c.String("prefix"), c.String("object"))
	if err != nil {
		return err
	}
	log.Info().Int("files", len(paths)).Str("bucket", cfg.Storage.Bucket).Msg("seed: downloaded bucket objects")

	return importAll(c, paths)
}

func runSyncDrive(c *cli.Context) error {
	cfg := config.Load()

	svc, err := drive.NewService(c.Context, cfg.Drive)
	if err != nil {
		return err
	}

	paths, err := drive.NewDownloader(svc).DownloadFolder(c.Context, drive.DownloadOptions{
		FolderID:    c.String("folder-id"),
		FolderPath:  c.String("folder-path"),
		DownloadDir: downloadDir(c, cfg, "drive"),
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CSV or XLSX files found in drive folder")
	}
	log.Info().Int("files", len(paths)).Msg("seed: downloaded drive files")

	return importAll(c, paths)
}

func importAll(c *cli.Context, paths []string) error {
	importer, err := importerFrom(c)
	if err != nil {
		return err
	}

	results, err := importer.ImportFiles(c.Context, paths)
	for _, r := range results {
		fmt.Printf("%s -> %s: %d parsed, %d skipped, %d written\n", r.File, r.Target, r.Parsed, r.Skipped, r.Written)
	}
	return err
}
