package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Source reads ERP sales orders and invoices from MongoDB.
type Source struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    config.MongoConfig
	loc    *time.Location
}

var _ repository.RecordSource = (*Source)(nil)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig, loc *time.Location) (*Source, error) {
	if loc == nil {
		loc = time.UTC
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("connected to mongodb")

	return &Source{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		loc:    loc,
	}, nil
}

func (s *Source) salesCollections() []collectionSpec {
	return []collectionSpec{
		{name: s.cfg.SalesCollection, tag: s.cfg.IndustryCollectionTag},
		{name: s.cfg.AutomotiveCollection, tag: s.cfg.AutomotiveCollectionTag},
		{name: s.cfg.PGCollection, tag: s.cfg.IndustryCollectionTag, costCenter: s.cfg.PGCostCenterOverride},
	}
}

// ListSalesOrders reads every sales collection concurrently and merges them in
// collection order. Any failing collection fails the whole batch.
func (s *Source) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	specs := s.salesCollections()
	batches := make([][]domain.SalesOrder, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			orders, err := s.readSalesCollection(gctx, spec)
			if err != nil {
				return repository.RetrievalError(spec.name, err)
			}
			batches[i] = orders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, b := range batches {
		total += len(b)
	}
	merged := make([]domain.SalesOrder, 0, total)
	for _, b := range batches {
		merged = append(merged, b...)
	}

	log.Debug().Int("count", len(merged)).Msg("loaded sales orders from mongodb")
	return merged, nil
}

func (s *Source) readSalesCollection(ctx context.Context, spec collectionSpec) ([]domain.SalesOrder, error) {
	coll := s.db.Collection(spec.name)
	opts := options.Find().SetSort(bson.D{{Key: "order_id", Value: 1}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []domain.SalesOrder
	for cursor.Next(ctx) {
		var doc salesDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sales order: %w", err)
		}
		orders = append(orders, doc.toDomain(spec, s.loc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListInvoices reads the invoice collection.
func (s *Source) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	coll := s.db.Collection(s.cfg.InvoiceCollection)
	opts := options.Find().SetSort(bson.D{{Key: "invoice_id", Value: 1}})

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, repository.RetrievalError(s.cfg.InvoiceCollection, err)
	}
	defer cursor.Close(ctx)

	var invoices []domain.Invoice
	for cursor.Next(ctx) {
		var doc invoiceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, repository.RetrievalError(s.cfg.InvoiceCollection, fmt.Errorf("decode invoice: %w", err))
		}
		invoices = append(invoices, doc.toDomain(s.loc))
	}
	if err := cursor.Err(); err != nil {
		return nil, repository.RetrievalError(s.cfg.InvoiceCollection, err)
	}
	return invoices, nil
}

func (s *Source) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
