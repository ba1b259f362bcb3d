package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// Publisher announces that imported records changed.
type Publisher interface {
	PublishRefresh(ctx context.Context, reason string) error
}

// Result summarises one imported file.
type Result struct {
	File    string            `json:"file"`
	Target  repository.Target `json:"target"`
	Parsed  int               `json:"parsed"`
	Skipped int               `json:"skipped"`
	Written int               `json:"written"`
}

type Importer struct {
	writer    repository.RecordWriter
	publisher Publisher
}

func NewImporter(writer repository.RecordWriter) *Importer {
	return &Importer{writer: writer}
}

// WithPublisher sends a refresh event after every import that wrote records.
func (im *Importer) WithPublisher(p Publisher) *Importer {
	im.publisher = p
	return im
}

// TargetForFile guesses the destination from an ERP export file name, e.g.
// erp_si.csv, erp_so_oto.xlsx or erp_so_pg.csv. Anything else is a sales export.
func TargetForFile(path string) repository.Target {
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	switch {
	case strings.Contains(name, "erp_si") || strings.Contains(name, "invoice"):
		return repository.TargetInvoices
	case strings.Contains(name, "oto") || strings.Contains(name, "automotive"):
		return repository.TargetAutomotive
	case strings.HasSuffix(name, "_pg") || strings.Contains(name, "_pg_"):
		return repository.TargetPG
	default:
		return repository.TargetSales
	}
}

// ImportFile parses one file and upserts it into target.
func (im *Importer) ImportFile(ctx context.Context, path string, target repository.Target) (Result, error) {
	result, err := im.importFile(ctx, path, target)
	if err != nil {
		return result, err
	}
	if result.Written > 0 {
		im.publish(ctx, "import "+filepath.Base(path))
	}
	return result, nil
}

// ImportFiles imports each file into the target its name suggests and
// publishes a single refresh at the end. It stops at the first failing file.
func (im *Importer) ImportFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	written := 0
	for _, path := range paths {
		result, err := im.importFile(ctx, path, TargetForFile(path))
		if err != nil {
			return results, err
		}
		results = append(results, result)
		written += result.Written
	}
	if written > 0 {
		im.publish(ctx, fmt.Sprintf("import %d files", len(results)))
	}
	return results, nil
}

func (im *Importer) importFile(ctx context.Context, path string, target repository.Target) (Result, error) {
	result := Result{File: path, Target: target}

	table, err := ReadFile(path)
	if err != nil {
		return result, err
	}

	var stats ParseStats
	if target == repository.TargetInvoices {
		invoices, s, err := ParseInvoices(table)
		if err != nil {
			return result, fmt.Errorf("%s: %w", path, err)
		}
		stats = s
		result.Written, err = im.writer.UpsertInvoices(ctx, invoices)
		if err != nil {
			return result, fmt.Errorf("failed to write invoices from %s: %w", path, err)
		}
	} else {
		orders, s, err := ParseSalesOrders(table)
		if err != nil {
			return result, fmt.Errorf("%s: %w", path, err)
		}
		stats = s
		result.Written, err = im.writer.UpsertSalesOrders(ctx, target, orders)
		if err != nil {
			return result, fmt.Errorf("failed to write sales orders from %s: %w", path, err)
		}
	}

	result.Parsed = stats.Parsed
	result.Skipped = stats.Skipped
	log.Info().
		Str("file", path).
		Str("target", string(target)).
		Int("parsed", result.Parsed).
		Int("skipped", result.Skipped).
		Int("written", result.Written).
		Msg("ingest: file imported")
	return result, nil
}

func (im *Importer) publish(ctx context.Context, reason string) {
	if im.publisher == nil {
		return
	}
	if err := im.publisher.PublishRefresh(ctx, reason); err != nil {
		log.Warn().Err(err).Msg("ingest: failed to publish refresh event")
	}
}
