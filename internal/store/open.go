// Package store opens the configured record store.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository/mongodb"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository/postgres"
	"github.com/rs/zerolog/log"
)

// Open connects to the store named by cfg.Source.Driver. Dates read from the
// document store are interpreted in loc.
func Open(ctx context.Context, cfg *config.Config, loc *time.Location) (repository.Store, error) {
	switch cfg.Source.Driver {
	case config.SourceMongo, "mongodb", "":
		src, err := mongodb.Connect(ctx, cfg.Mongo, loc)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourcePostgres:
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Database.DBName).Msg("connected to postgres")
		return postgres.NewRecordRepository(db, TaggingFrom(cfg.Mongo)), nil
	default:
		return nil, fmt.Errorf("unknown source driver %q (want %s or %s)", cfg.Source.Driver, config.SourceMongo, config.SourcePostgres)
	}
}

// TaggingFrom reuses the document store's collection tags for the relational store
// so both drivers label records identically.
func TaggingFrom(cfg config.MongoConfig) postgres.Tagging {
	return postgres.Tagging{
		Industry:     cfg.IndustryCollectionTag,
		Automotive:   cfg.AutomotiveCollectionTag,
		PGCostCenter: cfg.PGCostCenterOverride,
	}
}
