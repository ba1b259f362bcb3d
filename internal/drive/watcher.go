package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// DownloadOptions controls how files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	FolderPath  string
	DownloadDir string
}

// Downloader pulls import files from one Drive folder.
type Downloader struct {
	files Files
}

func NewDownloader(files Files) *Downloader {
	return &Downloader{files: files}
}

// DownloadFolder downloads every CSV and XLSX file of the folder into
// DownloadDir and returns the local paths sorted by name. FolderPath is
// resolved when FolderID is empty.
func (d *Downloader) DownloadFolder(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	folderID := opts.FolderID
	if folderID == "" {
		id, err := d.files.FindFolderByPath(ctx, opts.FolderPath)
		if err != nil {
			return nil, err
		}
		folderID = id
	}

	files, err := d.files.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if f.MimeType == folderMimeType || !storage.IsImportFile(f.Name) {
			continue
		}

		localPath := filepath.Join(opts.DownloadDir, filepath.Base(f.Name))
		if err := d.download(ctx, f, localPath); err != nil {
			return nil, err
		}
		log.Debug().Str("file", f.Name).Str("path", localPath).Msg("drive: downloaded import file")
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func (d *Downloader) download(ctx context.Context, f *File, localPath string) error {
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}
	if err := d.files.DownloadFile(ctx, f.ID, out); err != nil {
		out.Close()
		return fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	return out.Close()
}
