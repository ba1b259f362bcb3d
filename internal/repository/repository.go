package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// ErrRetrieval marks a failure to read records from the backing store.
var ErrRetrieval = errors.New("record retrieval failed")

// RetrievalError wraps a driver error so callers can match ErrRetrieval.
func RetrievalError(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRetrieval, source, err)
}

// SalesOrderSource returns the merged sales order batch with collection tags applied.
type SalesOrderSource interface {
	ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error)
}

type InvoiceSource interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// RecordSource serves both record kinds.
type RecordSource interface {
	SalesOrderSource
	InvoiceSource
	Close(ctx context.Context) error
}

// Target names the physical collection or table a batch is written to.
type Target string

const (
	TargetSales      Target = "sales"
	TargetAutomotive Target = "automotive"
	TargetPG         Target = "pg"
	TargetInvoices   Target = "invoices"
)

// ParseTarget validates a target name.
func ParseTarget(name string) (Target, error) {
	switch t := Target(name); t {
	case TargetSales, TargetAutomotive, TargetPG, TargetInvoices:
		return t, nil
	}
	return "", fmt.Errorf("unknown target %q (want sales, automotive, pg or invoices)", name)
}

// RecordWriter persists imported records.
type RecordWriter interface {
	UpsertSalesOrders(ctx context.Context, target Target, orders []domain.SalesOrder) (int, error)
	UpsertInvoices(ctx context.Context, invoices []domain.Invoice) (int, error)
}

// Store reads and writes records against one backing database.
type Store interface {
	RecordSource
	RecordWriter
}
