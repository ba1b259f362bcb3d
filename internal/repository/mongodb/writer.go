package mongodb

import (
	"context"
	"fmt"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const writeBatchSize = 500

var _ repository.RecordWriter = (*Source)(nil)

func (s *Source) collectionFor(target repository.Target) (string, error) {
	switch target {
	case repository.TargetSales:
		return s.cfg.SalesCollection, nil
	case repository.TargetAutomotive:
		return s.cfg.AutomotiveCollection, nil
	case repository.TargetPG:
		return s.cfg.PGCollection, nil
	case repository.TargetInvoices:
		return s.cfg.InvoiceCollection, nil
	}
	return "", fmt.Errorf("unknown target %q", target)
}

// UpsertSalesOrders replaces documents by order_id, inserting new ones.
func (s *Source) UpsertSalesOrders(ctx context.Context, target repository.Target, orders []domain.SalesOrder) (int, error) {
	if target == repository.TargetInvoices {
		return 0, fmt.Errorf("sales orders cannot be written to %q", target)
	}
	name, err := s.collectionFor(target)
	if err != nil {
		return 0, err
	}

	models := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		if o.OrderID == "" {
			continue
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"order_id": o.OrderID}).
			SetReplacement(salesOrderDocument(o)).
			SetUpsert(true))
	}
	return s.bulkWrite(ctx, name, models)
}

// UpsertInvoices replaces documents by invoice_id, inserting new ones.
func (s *Source) UpsertInvoices(ctx context.Context, invoices []domain.Invoice) (int, error) {
	models := make([]mongo.WriteModel, 0, len(invoices))
	for _, inv := range invoices {
		if inv.InvoiceID == "" {
			continue
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"invoice_id": inv.InvoiceID}).
			SetReplacement(invoiceDocumentOf(inv)).
			SetUpsert(true))
	}
	return s.bulkWrite(ctx, s.cfg.InvoiceCollection, models)
}

func (s *Source) bulkWrite(ctx context.Context, collection string, models []mongo.WriteModel) (int, error) {
	coll := s.db.Collection(collection)
	opts := options.BulkWrite().SetOrdered(false)

	written := 0
	for start := 0; start < len(models); start += writeBatchSize {
		end := min(start+writeBatchSize, len(models))
		res, err := coll.BulkWrite(ctx, models[start:end], opts)
		if err != nil {
			return written, fmt.Errorf("bulk write %s: %w", collection, err)
		}
		written += int(res.UpsertedCount + res.MatchedCount)
	}
	return written, nil
}
