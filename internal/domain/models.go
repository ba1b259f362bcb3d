// backend-go/internal/domain/models.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Collection tags carried by every sales order and invoice.
const (
	CollectionIndustry   = "Industry"
	CollectionAutomotive = "Otomotive"
)

// CanonicalCollection returns the known tag matching label case-insensitively,
// or the trimmed label itself.
func CanonicalCollection(label string) string {
	label = strings.TrimSpace(label)
	for _, known := range []string{CollectionIndustry, CollectionAutomotive} {
		if strings.EqualFold(known, label) {
			return known
		}
	}
	return label
}

// SalesOrder is a sales order as stored by the ERP export.
type SalesOrder struct {
	OrderID         string          `json:"order_id" bson:"order_id" db:"order_id"`
	Name            string          `json:"name" bson:"name" db:"name"`
	CustomerName    string          `json:"customer_name" bson:"customer_name" db:"customer_name"`
	PODate          *time.Time      `json:"po_date,omitempty" bson:"po_date" db:"po_date"`
	OrderDate       *time.Time      `json:"order_date,omitempty" bson:"order_date" db:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty" bson:"delivery_date" db:"delivery_date"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty" bson:"transaction_date" db:"transaction_date"`
	Status          string          `json:"status" bson:"status" db:"status"`
	BaseTotal       decimal.Decimal `json:"base_total" bson:"base_total" db:"base_total"`
	TotalAmount     decimal.Decimal `json:"total_amount" bson:"total_amount" db:"total_amount"`
	CostCenter      string          `json:"cost_center" bson:"cost_center" db:"cost_center"`
	Collection      string          `json:"collection" bson:"collection" db:"collection"`
	Department      string          `json:"department" bson:"department" db:"department"`
}

// Record projects the order onto the normalized shape the analytics engine reads.
// Revenue is the order's base total.
func (o SalesOrder) Record() Record {
	orderDate := o.OrderDate
	if orderDate == nil {
		orderDate = o.PODate
	}

	return Record{
		ID:              o.OrderID,
		Name:            o.Name,
		CustomerName:    o.CustomerName,
		OrderDate:       orderDate,
		DueDate:         o.DeliveryDate,
		TransactionDate: o.TransactionDate,
		Amount:          o.BaseTotal,
		Status:          o.Status,
		CostCenter:      o.CostCenter,
		Collection:      o.Collection,
		Department:      o.Department,
	}
}

// Invoice is a sales invoice as stored by the ERP export.
type Invoice struct {
	InvoiceID         string          `json:"invoice_id" bson:"invoice_id" db:"invoice_id"`
	OrderID           string          `json:"order_id" bson:"order_id" db:"order_id"`
	CustomerName      string          `json:"customer_name" bson:"customer_name" db:"customer_name"`
	InvoiceDate       *time.Time      `json:"invoice_date,omitempty" bson:"invoice_date" db:"invoice_date"`
	DueDate           *time.Time      `json:"due_date,omitempty" bson:"due_date" db:"due_date"`
	Status            string          `json:"status" bson:"status" db:"status"`
	TotalAmount       decimal.Decimal `json:"total_amount" bson:"total_amount" db:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount" bson:"paid_amount" db:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" bson:"outstanding_amount" db:"outstanding_amount"`
	CostCenter        string          `json:"cost_center" bson:"cost_center" db:"cost_center"`
	Collection        string          `json:"collection" bson:"collection" db:"collection"`
	Department        string          `json:"department" bson:"department" db:"department"`
}

// Record projects the invoice onto the normalized shape. The invoice date
// doubles as order and transaction date.
func (i Invoice) Record() Record {
	return Record{
		ID:              i.InvoiceID,
		Name:            i.OrderID,
		CustomerName:    i.CustomerName,
		OrderDate:       i.InvoiceDate,
		DueDate:         i.DueDate,
		TransactionDate: i.InvoiceDate,
		Amount:          i.TotalAmount,
		PaidAmount:      i.PaidAmount,
		Status:          i.Status,
		CostCenter:      i.CostCenter,
		Collection:      i.Collection,
		Department:      i.Department,
	}
}

// Record is the flat shape consumed by filters and aggregations.
type Record struct {
	ID              string          `json:"id"`
	Name            string          `json:"name,omitempty"`
	CustomerName    string          `json:"customer_name"`
	OrderDate       *time.Time      `json:"order_date,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Status          string          `json:"status"`
	CostCenter      string          `json:"cost_center,omitempty"`
	Collection      string          `json:"collection,omitempty"`
	Department      string          `json:"department,omitempty"`
}

// SalesRecords converts a batch of orders.
func SalesRecords(orders []SalesOrder) []Record {
	out := make([]Record, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Record())
	}
	return out
}

// InvoiceRecords converts a batch of invoices.
func InvoiceRecords(invoices []Invoice) []Record {
	out := make([]Record, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, inv.Record())
	}
	return out
}
