package mongodb

import (
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ERP exports are loosely typed: dates arrive as BSON dates or strings and
// amounts as doubles, integers, decimals or strings, so those fields are
// decoded raw and normalized by hand.
type salesDocument struct {
	OrderID         string        `bson:"order_id"`
	Name            string        `bson:"name"`
	CustomerName    string        `bson:"customer_name"`
	PODate          bson.RawValue `bson:"po_date"`
	OrderDate       bson.RawValue `bson:"order_date"`
	DeliveryDate    bson.RawValue `bson:"delivery_date"`
	TransactionDate bson.RawValue `bson:"transaction_date"`
	Status          string        `bson:"status"`
	BaseTotal       bson.RawValue `bson:"base_total"`
	TotalAmount     bson.RawValue `bson:"total_amount"`
	CostCenter      string        `bson:"cost_center"`
	Department      string        `bson:"department"`
}

type invoiceDocument struct {
	InvoiceID         string        `bson:"invoice_id"`
	OrderID           string        `bson:"order_id"`
	CustomerName      string        `bson:"customer_name"`
	InvoiceDate       bson.RawValue `bson:"invoice_date"`
	DueDate           bson.RawValue `bson:"due_date"`
	Status            string        `bson:"status"`
	TotalAmount       bson.RawValue `bson:"total_amount"`
	PaidAmount        bson.RawValue `bson:"paid_amount"`
	OutstandingAmount bson.RawValue `bson:"outstanding_amount"`
	CostCenter        string        `bson:"cost_center"`
	Collection        string        `bson:"collection"`
	Department        string        `bson:"department"`
}

// collectionSpec describes one physical sales collection and how its
// documents are tagged when merged.
type collectionSpec struct {
	name       string
	tag        string
	costCenter string
}

func (d salesDocument) toDomain(spec collectionSpec, loc *time.Location) domain.SalesOrder {
	costCenter := d.CostCenter
	if spec.costCenter != "" {
		costCenter = spec.costCenter
	}

	return domain.SalesOrder{
		OrderID:         d.OrderID,
		Name:            d.Name,
		CustomerName:    d.CustomerName,
		PODate:          rawDate(d.PODate, loc),
		OrderDate:       rawDate(d.OrderDate, loc),
		DeliveryDate:    rawDate(d.DeliveryDate, loc),
		TransactionDate: rawDate(d.TransactionDate, loc),
		Status:          d.Status,
		BaseTotal:       rawAmount(d.BaseTotal),
		TotalAmount:     rawAmount(d.TotalAmount),
		CostCenter:      costCenter,
		Collection:      spec.tag,
		Department:      d.Department,
	}
}

func (d invoiceDocument) toDomain(loc *time.Location) domain.Invoice {
	total := rawAmount(d.TotalAmount)
	paid := rawAmount(d.PaidAmount)
	outstanding := rawAmount(d.OutstandingAmount)
	if d.OutstandingAmount.Type == 0 || d.OutstandingAmount.Type == bson.TypeNull {
		outstanding = total.Sub(paid)
	}

	return domain.Invoice{
		InvoiceID:         d.InvoiceID,
		OrderID:           d.OrderID,
		CustomerName:      d.CustomerName,
		InvoiceDate:       rawDate(d.InvoiceDate, loc),
		DueDate:           rawDate(d.DueDate, loc),
		Status:            d.Status,
		TotalAmount:       total,
		PaidAmount:        paid,
		OutstandingAmount: outstanding,
		CostCenter:        d.CostCenter,
		Collection:        d.Collection,
		Department:        d.Department,
	}
}

// rawDate reads a BSON date or a date string. BSON dates are instants and are
// converted to the business timezone before the calendar day is taken.
func rawDate(v bson.RawValue, loc *time.Location) *time.Time {
	switch v.Type {
	case bson.TypeDateTime:
		ms, ok := v.DateTimeOK()
		if !ok {
			return nil
		}
		d := clock.DateOf(time.UnixMilli(ms).In(loc))
		return &d
	case bson.TypeString:
		s, _ := v.StringValueOK()
		d, err := domain.ParseDate(s)
		if err != nil {
			log.Debug().Err(err).Msg("mongo source: skipping unparseable date")
			return nil
		}
		return d
	}
	return nil
}

// rawAmount reads any numeric BSON value; missing or malformed amounts are zero.
func rawAmount(v bson.RawValue) decimal.Decimal {
	switch v.Type {
	case bson.TypeDouble:
		f, _ := v.DoubleOK()
		return decimal.NewFromFloat(f)
	case bson.TypeInt32:
		i, _ := v.Int32OK()
		return decimal.NewFromInt32(i)
	case bson.TypeInt64:
		i, _ := v.Int64OK()
		return decimal.NewFromInt(i)
	case bson.TypeDecimal128:
		d128, _ := v.Decimal128OK()
		if amount, err := decimal.NewFromString(d128.String()); err == nil {
			return amount
		}
	case bson.TypeString:
		s, _ := v.StringValueOK()
		if amount, err := domain.ParseAmount(s); err == nil {
			return amount
		}
	}
	return decimal.Zero
}

func salesOrderDocument(o domain.SalesOrder) bson.M {
	return bson.M{
		"order_id":         o.OrderID,
		"name":             o.Name,
		"customer_name":    o.CustomerName,
		"po_date":          o.PODate,
		"order_date":       o.OrderDate,
		"delivery_date":    o.DeliveryDate,
		"transaction_date": o.TransactionDate,
		"status":           o.Status,
		"base_total":       decimal128(o.BaseTotal),
		"total_amount":     decimal128(o.TotalAmount),
		"cost_center":      o.CostCenter,
		"department":       o.Department,
	}
}

func invoiceDocumentOf(inv domain.Invoice) bson.M {
	return bson.M{
		"invoice_id":         inv.InvoiceID,
		"order_id":           inv.OrderID,
		"customer_name":      inv.CustomerName,
		"invoice_date":       inv.InvoiceDate,
		"due_date":           inv.DueDate,
		"status":             inv.Status,
		"total_amount":       decimal128(inv.TotalAmount),
		"paid_amount":        decimal128(inv.PaidAmount),
		"outstanding_amount": decimal128(inv.OutstandingAmount),
		"cost_center":        inv.CostCenter,
		"collection":         strings.TrimSpace(inv.Collection),
		"department":         inv.Department,
	}
}

func decimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return v
}
