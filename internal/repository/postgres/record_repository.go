package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Tagging controls how rows from each source table are labelled on read.
type Tagging struct {
	Industry     string
	Automotive   string
	PGCostCenter string
}

// RecordRepository stores sales orders and invoices in PostgreSQL.
type RecordRepository struct {
	db   *DB
	tags Tagging
}

var (
	_ repository.RecordSource = (*RecordRepository)(nil)
	_ repository.RecordWriter = (*RecordRepository)(nil)
)

func NewRecordRepository(db *DB, tags Tagging) *RecordRepository {
	return &RecordRepository{db: db, tags: tags}
}

// Rows are returned in the same order the document store merges them:
// industry first, then automotive, then PG.
const listSalesOrdersQuery = `
	SELECT
		order_id,
		name,
		customer_name,
		po_date,
		order_date,
		delivery_date,
		transaction_date,
		status,
		base_total,
		total_amount,
		CASE WHEN source = 'pg' AND $3 <> '' THEN $3 ELSE cost_center END AS cost_center,
		CASE WHEN source = 'automotive' THEN $2 ELSE $1 END AS collection,
		department
	FROM sales_orders
	ORDER BY
		CASE source WHEN 'sales' THEN 0 WHEN 'automotive' THEN 1 ELSE 2 END,
		order_id
`

func (r *RecordRepository) ListSalesOrders(ctx context.Context) ([]domain.SalesOrder, error) {
	var orders []domain.SalesOrder
	err := r.db.SelectContext(ctx, &orders, listSalesOrdersQuery, r.tags.Industry, r.tags.Automotive, r.tags.PGCostCenter)
	if err != nil {
		return nil, repository.RetrievalError("sales_orders", err)
	}

	for i := range orders {
		o := &orders[i]
		o.PODate = calendarDate(o.PODate)
		o.OrderDate = calendarDate(o.OrderDate)
		o.DeliveryDate = calendarDate(o.DeliveryDate)
		o.TransactionDate = calendarDate(o.TransactionDate)
	}

	log.Debug().Int("count", len(orders)).Msg("loaded sales orders from postgres")
	return orders, nil
}

const listInvoicesQuery = `
	SELECT
		invoice_id,
		order_id,
		customer_name,
		invoice_date,
		due_date,
		status,
		total_amount,
		paid_amount,
		outstanding_amount,
		cost_center,
		collection,
		department
	FROM invoices
	ORDER BY invoice_id
`

func (r *RecordRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, listInvoicesQuery); err != nil {
		return nil, repository.RetrievalError("invoices", err)
	}

	for i := range invoices {
		invoices[i].InvoiceDate = calendarDate(invoices[i].InvoiceDate)
		invoices[i].DueDate = calendarDate(invoices[i].DueDate)
	}
	return invoices, nil
}

func (r *RecordRepository) Close(context.Context) error {
	return r.db.Close()
}

const upsertSalesOrderQuery = `
	INSERT INTO sales_orders (
		source, order_id, name, customer_name, po_date, order_date,
		delivery_date, transaction_date, status, base_total, total_amount,
		cost_center, department
	) VALUES (
		:source, :order_id, :name, :customer_name, :po_date, :order_date,
		:delivery_date, :transaction_date, :status, :base_total, :total_amount,
		:cost_center, :department
	)
	ON CONFLICT (source, order_id)
	DO UPDATE SET
		name = EXCLUDED.name,
		customer_name = EXCLUDED.customer_name,
		po_date = EXCLUDED.po_date,
		order_date = EXCLUDED.order_date,
		delivery_date = EXCLUDED.delivery_date,
		transaction_date = EXCLUDED.transaction_date,
		status = EXCLUDED.status,
		base_total = EXCLUDED.base_total,
		total_amount = EXCLUDED.total_amount,
		cost_center = EXCLUDED.cost_center,
		department = EXCLUDED.department,
		updated_at = NOW()
`

type salesOrderRow struct {
	Source string `db:"source"`
	domain.SalesOrder
}

func (r *RecordRepository) UpsertSalesOrders(ctx context.Context, target repository.Target, orders []domain.SalesOrder) (int, error) {
	if target == repository.TargetInvoices {
		return 0, fmt.Errorf("sales orders cannot be written to %q", target)
	}

	written := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, upsertSalesOrderQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, o := range orders {
			if o.OrderID == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, salesOrderRow{Source: string(target), SalesOrder: o}); err != nil {
				return fmt.Errorf("failed to upsert sales order %s: %w", o.OrderID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

const upsertInvoiceQuery = `
	INSERT INTO invoices (
		invoice_id, order_id, customer_name, invoice_date, due_date, status,
		total_amount, paid_amount, outstanding_amount, cost_center, collection, department
	) VALUES (
		:invoice_id, :order_id, :customer_name, :invoice_date, :due_date, :status,
		:total_amount, :paid_amount, :outstanding_amount, :cost_center, :collection, :department
	)
	ON CONFLICT (invoice_id)
	DO UPDATE SET
		order_id = EXCLUDED.order_id,
		customer_name = EXCLUDED.customer_name,
		invoice_date = EXCLUDED.invoice_date,
		due_date = EXCLUDED.due_date,
		status = EXCLUDED.status,
		total_amount = EXCLUDED.total_amount,
		paid_amount = EXCLUDED.paid_amount,
		outstanding_amount = EXCLUDED.outstanding_amount,
		cost_center = EXCLUDED.cost_center,
		collection = EXCLUDED.collection,
		department = EXCLUDED.department,
		updated_at = NOW()
`

func (r *RecordRepository) UpsertInvoices(ctx context.Context, invoices []domain.Invoice) (int, error) {
	written := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, upsertInvoiceQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, inv := range invoices {
			if inv.InvoiceID == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, inv); err != nil {
				return fmt.Errorf("failed to upsert invoice %s: %w", inv.InvoiceID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func calendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := clock.DateOf(*t)
	return &d
}
