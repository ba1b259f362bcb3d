package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Column aliases accepted in export headers, keyed by field name.
var salesColumns = map[string][]string{
	"order_id":         {"order_id", "sales_order", "so_number", "id"},
	"name":             {"name", "title"},
	"customer_name":    {"customer_name", "customer"},
	"po_date":          {"po_date"},
	"order_date":       {"order_date", "date"},
	"delivery_date":    {"delivery_date"},
	"transaction_date": {"transaction_date"},
	"status":           {"status"},
	"base_total":       {"base_total", "base_grand_total"},
	"total_amount":     {"total_amount", "grand_total", "total"},
	"cost_center":      {"cost_center"},
	"department":       {"department"},
}

var invoiceColumns = map[string][]string{
	"invoice_id":         {"invoice_id", "sales_invoice", "invoice_no", "id"},
	"order_id":           {"order_id", "sales_order"},
	"customer_name":      {"customer_name", "customer"},
	"invoice_date":       {"invoice_date", "posting_date"},
	"due_date":           {"due_date"},
	"status":             {"status"},
	"total_amount":       {"total_amount", "grand_total", "total"},
	"paid_amount":        {"paid_amount"},
	"outstanding_amount": {"outstanding_amount"},
	"cost_center":        {"cost_center"},
	"collection":         {"collection"},
	"department":         {"department"},
}

// ParseStats reports how many data rows were accepted or skipped.
type ParseStats struct {
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`
}

// columnIndex maps field names to their position in a header row.
type columnIndex map[string]int

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(h)
}

func buildIndex(header []string, columns map[string][]string, required ...string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := positions[normalizeHeader(h)]; !seen {
			positions[normalizeHeader(h)] = i
		}
	}

	idx := make(columnIndex, len(columns))
	for field, aliases := range columns {
		for _, alias := range aliases {
			if pos, ok := positions[alias]; ok {
				idx[field] = pos
				break
			}
		}
	}

	for _, field := range required {
		if _, ok := idx[field]; !ok {
			return nil, fmt.Errorf("missing required column: %s", field)
		}
	}
	return idx, nil
}

// row wraps one record and remembers the first conversion error.
type row struct {
	idx    columnIndex
	values []string
	err    error
}

func (r *row) value(field string) string {
	if pos, ok := r.idx[field]; ok && pos < len(r.values) {
		return strings.TrimSpace(r.values[pos])
	}
	return ""
}

func (r *row) date(field string) *time.Time {
	d, err := domain.ParseDate(r.value(field))
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", field, err)
	}
	return d
}

func (r *row) amount(field string) decimal.Decimal {
	a, err := domain.ParseAmount(r.value(field))
	if err == nil && a.IsNegative() {
		err = fmt.Errorf("negative amount %s", a)
	}
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("%s: %w", field, err)
	}
	return a
}

// ParseSalesOrders converts a table into sales orders. Rows without an order
// id or with unreadable dates or amounts are skipped.
func ParseSalesOrders(t *Table) ([]domain.SalesOrder, ParseStats, error) {
	idx, err := buildIndex(t.Header, salesColumns, "order_id")
	if err != nil {
		return nil, ParseStats{}, err
	}

	var stats ParseStats
	orders := make([]domain.SalesOrder, 0, len(t.Rows))
	for i, values := range t.Rows {
		if blankRow(values) {
			continue
		}
		r := &row{idx: idx, values: values}

		o := domain.SalesOrder{
			OrderID:         r.value("order_id"),
			Name:            r.value("name"),
			CustomerName:    r.value("customer_name"),
			PODate:          r.date("po_date"),
			OrderDate:       r.date("order_date"),
			DeliveryDate:    r.date("delivery_date"),
			TransactionDate: r.date("transaction_date"),
			Status:          r.value("status"),
			TotalAmount:     r.amount("total_amount"),
			CostCenter:      r.value("cost_center"),
			Department:      r.value("department"),
		}
		if r.value("base_total") != "" {
			o.BaseTotal = r.amount("base_total")
		} else {
			o.BaseTotal = o.TotalAmount
		}
		if o.OrderID == "" && r.err == nil {
			r.err = fmt.Errorf("order id is blank")
		}

		if r.err != nil {
			log.Warn().Err(r.err).Int("row", i+2).Msg("ingest: skipping sales order row")
			stats.Skipped++
			continue
		}
		orders = append(orders, o)
	}

	stats.Parsed = len(orders)
	return orders, stats, nil
}

// ParseInvoices converts a table into invoices. A missing outstanding column
// is derived as total minus paid.
func ParseInvoices(t *Table) ([]domain.Invoice, ParseStats, error) {
	idx, err := buildIndex(t.Header, invoiceColumns, "invoice_id")
	if err != nil {
		return nil, ParseStats{}, err
	}

	var stats ParseStats
	invoices := make([]domain.Invoice, 0, len(t.Rows))
	for i, values := range t.Rows {
		if blankRow(values) {
			continue
		}
		r := &row{idx: idx, values: values}

		inv := domain.Invoice{
			InvoiceID:    r.value("invoice_id"),
			OrderID:      r.value("order_id"),
			CustomerName: r.value("customer_name"),
			InvoiceDate:  r.date("invoice_date"),
			DueDate:      r.date("due_date"),
			Status:       r.value("status"),
			TotalAmount:  r.amount("total_amount"),
			PaidAmount:   r.amount("paid_amount"),
			CostCenter:   r.value("cost_center"),
			Collection:   domain.CanonicalCollection(r.value("collection")),
			Department:   r.value("department"),
		}
		if r.value("outstanding_amount") != "" {
			inv.OutstandingAmount = r.amount("outstanding_amount")
		} else {
			inv.OutstandingAmount = inv.TotalAmount.Sub(inv.PaidAmount)
		}
		if inv.InvoiceID == "" && r.err == nil {
			r.err = fmt.Errorf("invoice id is blank")
		}

		if r.err != nil {
			log.Warn().Err(r.err).Int("row", i+2).Msg("ingest: skipping invoice row")
			stats.Skipped++
			continue
		}
		invoices = append(invoices, inv)
	}

	stats.Parsed = len(invoices)
	return invoices, stats, nil
}

func blankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
